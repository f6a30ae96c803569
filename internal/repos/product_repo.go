package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db sqlx.ExtContext }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `product_id, product_name, price, COALESCE(image,'') AS image, COALESCE(types,'') AS types`

// List returns every product, or only those in category when it is set.
func (r *ProductRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	args := []any{}
	if category != "" {
		q += ` WHERE types = ?`
		args = append(args, category)
	}
	q += ` ORDER BY product_id`

	out := []domain.Product{}
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(q), args...); err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

// Categories returns the distinct non-null category labels.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	out := []string{}
	err := sqlx.SelectContext(ctx, r.db, &out, `
	  SELECT DISTINCT types FROM products
	  WHERE types IS NOT NULL
	  ORDER BY types
	`)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(`SELECT `+productCols+` FROM products WHERE product_id = ?`), id)
	if err != nil {
		return domain.Product{}, notFound(err, "product", id)
	}
	return p, nil
}

// Insert is used by seeding and tests; the catalog is otherwise read-only.
func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) (int64, error) {
	var image, types any
	if p.Image != "" {
		image = p.Image
	}
	if p.Category != "" {
		types = p.Category
	}
	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(`
	  INSERT INTO products(product_name, price, image, types)
	  VALUES(?, ?, ?, ?)
	  RETURNING product_id
	`), p.Name, p.Price, image, types)
	return id, storageErr(err)
}
