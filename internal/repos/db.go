package repos

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"storefront/internal/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// OpenDB opens the shared pool for driver ("sqlite" or "pgx"), verifies it
// and makes sure the schema exists.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	switch {
	case driver == DriverSQLite && strings.HasPrefix(dsn, ":memory:"):
		// every new connection would see its own empty database
		db.SetMaxOpenConns(1)
	case driver == DriverPostgres:
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageErr(err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN turns on foreign keys and a busy timeout for every pooled
// connection and makes transactions take the write lock up front. File
// databases also get WAL so readers don't block the writer.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "storefront.db"
	}
	params := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)", "_txlock=immediate"}
	if !strings.HasPrefix(dsn, ":memory:") && !strings.Contains(dsn, "mode=memory") {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverPostgres {
		schema = postgresSchema
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", storageErr(err))
		}
	}
	return nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS customers(
  customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  customer_name TEXT,
  contactno TEXT,
  customer_address TEXT,
  password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT,
  types TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_types ON products(types);

CREATE TABLE IF NOT EXISTS cart(
  cart_id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL UNIQUE REFERENCES customers(customer_id)
);

CREATE TABLE IF NOT EXISTS cart_products(
  cart_id INTEGER NOT NULL REFERENCES cart(cart_id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(product_id),
  UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders(
  order_id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  delivery_address TEXT NOT NULL,
  payment TEXT NOT NULL,
  customer_id INTEGER NOT NULL REFERENCES customers(customer_id)
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, date)
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS customers(
  customer_id BIGSERIAL PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  customer_name TEXT,
  contactno TEXT,
  customer_address TEXT,
  password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  product_id BIGSERIAL PRIMARY KEY,
  product_name TEXT NOT NULL,
  price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
  image TEXT,
  types TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_types ON products(types);

CREATE TABLE IF NOT EXISTS cart(
  cart_id BIGSERIAL PRIMARY KEY,
  customer_id BIGINT NOT NULL UNIQUE REFERENCES customers(customer_id)
);

CREATE TABLE IF NOT EXISTS cart_products(
  cart_id BIGINT NOT NULL REFERENCES cart(cart_id) ON DELETE CASCADE,
  product_id BIGINT NOT NULL REFERENCES products(product_id),
  UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders(
  order_id BIGSERIAL PRIMARY KEY,
  date TEXT NOT NULL,
  delivery_address TEXT NOT NULL,
  payment TEXT NOT NULL,
  customer_id BIGINT NOT NULL REFERENCES customers(customer_id)
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, date)
`

// SeedDemo inserts a small catalog when the products table is empty.
func SeedDemo(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return storageErr(err)
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	prods := NewProductRepo(db)
	demo := []struct {
		name, price, image, types string
	}{
		{"Denim Jacket", "49.90", "img/denim-jacket.jpg", "clothing"},
		{"Canvas Sneakers", "35.00", "img/canvas-sneakers.jpg", "shoes"},
		{"Leather Belt", "18.50", "img/leather-belt.jpg", "accessories"},
		{"Wool Beanie", "12.00", "img/wool-beanie.jpg", "accessories"},
		{"Linen Shirt", "29.99", "img/linen-shirt.jpg", "clothing"},
	}
	for _, d := range demo {
		p := domain.Product{Name: d.name, Price: decimal.RequireFromString(d.price), Image: d.image, Category: d.types}
		if _, err := prods.Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
