package events

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderPlaced is emitted after a checkout commits.
type OrderPlaced struct {
	OrderID         int64           `json:"order_id"`
	CustomerID      int64           `json:"customer_id"`
	Date            string          `json:"date"`
	DeliveryAddress string          `json:"delivery_address"`
	Payment         string          `json:"payment"`
	ProductIDs      []int64         `json:"product_ids"`
	Total           decimal.Decimal `json:"total"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlaced) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (Nop) Close() error                                          { return nil }
