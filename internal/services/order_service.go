package services

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// OrderDateLayout is fixed width so stored dates sort as text.
const OrderDateLayout = "2006-01-02 15:04:05.000000"

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Tx     *repos.TxRunner
	Events events.Publisher
	Now    func() time.Time
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, tx *repos.TxRunner, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{Carts: carts, Orders: orders, Tx: tx, Events: pub, Now: time.Now}
}

// Checkout records an order for the caller and empties their cart in one
// transaction. The cart row itself is kept for later adds.
func (s *OrderService) Checkout(ctx context.Context, ident domain.Identity, deliveryAddress, paymentMethod string) (int64, error) {
	if err := authorize(ident); err != nil {
		return 0, err
	}
	addr, ok := validate.Address(deliveryAddress)
	if !ok {
		return 0, domain.Invalid("delivery_address", "is required")
	}
	payment, ok := validate.Payment(paymentMethod)
	if !ok {
		return 0, domain.Invalid("payment_method", "is required")
	}

	order := domain.Order{
		Date:            s.Now().UTC().Format(OrderDateLayout),
		DeliveryAddress: addr,
		Payment:         payment,
		CustomerID:      ident.CustomerID,
	}
	var lines []domain.CartLineView
	err := s.Tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		carts := s.Carts.WithTx(tx)
		var err error
		if lines, err = carts.Lines(ctx, ident.CustomerID); err != nil {
			return err
		}
		if order.ID, err = s.Orders.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		_, err = carts.Clear(ctx, ident.CustomerID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, order, lines)
	return order.ID, nil
}

// publish is best effort; the order is already committed.
func (s *OrderService) publish(ctx context.Context, o domain.Order, lines []domain.CartLineView) {
	e := events.OrderPlaced{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Date:            o.Date,
		DeliveryAddress: o.DeliveryAddress,
		Payment:         o.Payment,
		ProductIDs:      make([]int64, 0, len(lines)),
		Total:           decimal.Zero,
	}
	for _, l := range lines {
		e.ProductIDs = append(e.ProductIDs, l.ProductID)
		e.Total = e.Total.Add(l.LineTotal)
	}
	if err := s.Events.PublishOrderPlaced(ctx, e); err != nil {
		log.Printf("[events] order %d not published: %v", o.ID, err)
	}
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, ident domain.Identity) ([]domain.OrderView, error) {
	if err := authorize(ident); err != nil {
		return nil, err
	}
	return s.Orders.ListByCustomer(ctx, ident.CustomerID)
}
