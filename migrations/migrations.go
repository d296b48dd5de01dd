package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var productSchemas = map[string][]string{
	"stoolap": {
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			status INTEGER NOT NULL,
			stock INTEGER NOT NULL,
			price FLOAT NOT NULL,
			discount_type TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_id ON products(id)`,
	},
	"mysql": {
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(32) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			status INT NOT NULL,
			stock INT NOT NULL,
			price DOUBLE NOT NULL,
			discount_type VARCHAR(8) NOT NULL
		)`,
	},
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(ctx context.Context, db *sql.DB, driver string) error {
	queries, ok := productSchemas[driver]
	if !ok {
		return fmt.Errorf("no products schema for driver %q", driver)
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migrate products (%s): %w", driver, err)
		}
	}
	return nil
}
