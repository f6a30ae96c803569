package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CustomerRepo struct{ db sqlx.ExtContext }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `customer_id, email, COALESCE(customer_name,'') AS customer_name,
  COALESCE(contactno,'') AS contactno, COALESCE(customer_address,'') AS customer_address, password`

// Create inserts c and returns the new id. A taken email is reported as
// Duplicate.
func (r *CustomerRepo) Create(ctx context.Context, c domain.Customer) (int64, InsertStatus, error) {
	var id int64
	err := sqlx.GetContext(ctx, r.db, &id, r.db.Rebind(`
	  INSERT INTO customers(email, customer_name, contactno, customer_address, password)
	  VALUES(?, ?, ?, ?, ?)
	  RETURNING customer_id
	`), c.Email, c.Name, c.Contact, c.Address, c.Password)
	st, err := insertOutcome(err)
	if st != Inserted {
		return 0, st, err
	}
	return id, st, nil
}

func (r *CustomerRepo) ByEmail(ctx context.Context, email string) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT `+customerCols+` FROM customers WHERE email = ?`), email)
	if err != nil {
		return domain.Customer{}, notFound(err, "customer", email)
	}
	return c, nil
}

func (r *CustomerRepo) ByID(ctx context.Context, id int64) (domain.Customer, error) {
	var c domain.Customer
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT `+customerCols+` FROM customers WHERE customer_id = ?`), id)
	if err != nil {
		return domain.Customer{}, notFound(err, "customer", id)
	}
	return c, nil
}
