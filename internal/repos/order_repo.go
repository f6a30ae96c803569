package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db sqlx.ExtContext }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) WithTx(tx *sqlx.Tx) *OrderRepo { return &OrderRepo{db: tx} }

// Create inserts an order header and returns its id.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(`
	  INSERT INTO orders(date, delivery_address, payment, customer_id)
	  VALUES(?, ?, ?, ?)
	  RETURNING order_id
	`), o.Date, o.DeliveryAddress, o.Payment, o.CustomerID)
	if err != nil {
		return 0, storageErr(err)
	}
	return id, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.OrderView, error) {
	out := []domain.OrderView{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT o.order_id, o.date, o.delivery_address, o.payment,
	         COALESCE(c.customer_name,'') AS customer_name
	  FROM orders o
	  JOIN customers c ON o.customer_id = c.customer_id
	  WHERE o.customer_id = ?
	  ORDER BY o.date DESC, o.order_id DESC
	`), customerID)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}
