package domain

import "github.com/shopspring/decimal"

type Customer struct {
	ID       int64  `db:"customer_id" json:"customer_id"`
	Email    string `db:"email" json:"email"`
	Name     string `db:"customer_name" json:"name"`
	Contact  string `db:"contactno" json:"contact"`
	Address  string `db:"customer_address" json:"address"`
	Password string `db:"password" json:"-"` // encoded by the configured credential scheme
}

type Product struct {
	ID       int64           `db:"product_id" json:"product_id"`
	Name     string          `db:"product_name" json:"name"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Image    string          `db:"image" json:"image"`
	Category string          `db:"types" json:"category"`
}

// CartLineView is one cart line joined with its product.
type CartLineView struct {
	CartID    int64           `db:"cart_id" json:"cart_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"product_name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Image     string          `db:"image" json:"image"`
	LineTotal decimal.Decimal `db:"total_price" json:"line_total"`
}

type Order struct {
	ID              int64  `db:"order_id" json:"order_id"`
	Date            string `db:"date" json:"date"`
	DeliveryAddress string `db:"delivery_address" json:"delivery_address"`
	Payment         string `db:"payment" json:"payment"`
	CustomerID      int64  `db:"customer_id" json:"customer_id"`
}

// OrderView is an order as shown in the customer's history.
type OrderView struct {
	ID              int64  `db:"order_id" json:"order_id"`
	Date            string `db:"date" json:"date"`
	DeliveryAddress string `db:"delivery_address" json:"delivery_address"`
	Payment         string `db:"payment" json:"payment"`
	CustomerName    string `db:"customer_name" json:"customer_name"`
}
