package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CartRepo struct{ db sqlx.ExtContext }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// WithTx returns a copy of the repo whose statements run inside tx.
func (r *CartRepo) WithTx(tx *sqlx.Tx) *CartRepo { return &CartRepo{db: tx} }

// CartID returns the customer's cart, or an ErrNotFound error.
func (r *CartRepo) CartID(ctx context.Context, customerID int64) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(`SELECT cart_id FROM cart WHERE customer_id = ?`), customerID)
	if err != nil {
		return 0, notFound(err, "cart for customer", customerID)
	}
	return id, nil
}

// Create inserts the customer's cart. A cart that already exists for the
// customer is reported as Duplicate.
func (r *CartRepo) Create(ctx context.Context, customerID int64) (int64, InsertStatus, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(`INSERT INTO cart(customer_id) VALUES(?) RETURNING cart_id`), customerID)
	st, err := insertOutcome(err)
	if st != Inserted {
		return 0, st, err
	}
	return id, st, nil
}

// AddLine inserts a (cart, product) line. An existing line is reported as
// Duplicate and an unknown product as MissingReference.
func (r *CartRepo) AddLine(ctx context.Context, cartID, productID int64) (InsertStatus, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO cart_products(cart_id, product_id) VALUES(?, ?)`), cartID, productID)
	return insertOutcome(err)
}

// RemoveLine deletes the product from the customer's cart. It reports
// whether a line was removed.
func (r *CartRepo) RemoveLine(ctx context.Context, customerID, productID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  DELETE FROM cart_products
	  WHERE cart_id = (SELECT cart_id FROM cart WHERE customer_id = ?) AND product_id = ?
	`), customerID, productID)
	if err != nil {
		return false, storageErr(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Lines returns the customer's cart joined with products, one row per
// (cart, product) group with the group's summed price.
func (r *CartRepo) Lines(ctx context.Context, customerID int64) ([]domain.CartLineView, error) {
	out := []domain.CartLineView{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
	  SELECT cp.cart_id, cp.product_id, p.product_name, p.price,
	         COALESCE(p.image,'') AS image, SUM(p.price) AS total_price
	  FROM cart_products cp
	  JOIN products p ON cp.product_id = p.product_id
	  JOIN cart c ON cp.cart_id = c.cart_id
	  WHERE c.customer_id = ?
	  GROUP BY cp.cart_id, cp.product_id, p.product_name, p.price, p.image
	  ORDER BY cp.product_id
	`), customerID)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

// Clear deletes every line of the customer's cart and keeps the cart row.
func (r *CartRepo) Clear(ctx context.Context, customerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  DELETE FROM cart_products
	  WHERE cart_id IN (SELECT cart_id FROM cart WHERE customer_id = ?)
	`), customerID)
	if err != nil {
		return 0, storageErr(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
