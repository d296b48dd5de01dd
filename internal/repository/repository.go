package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"product-service/internal/cache"
	"product-service/internal/entity"
)

// ProductRepository stores products in a SQL database (embedded stoolap or MySQL).
type ProductRepository struct {
	db       *sqlx.DB
	statuses *cache.StatusCache
}

func NewProductRepository(db *sqlx.DB, statuses *cache.StatusCache) *ProductRepository {
	return &ProductRepository{db: db, statuses: statuses}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var record entity.ProductRecord

	query := `SELECT id, name, description, status, stock, price, discount_type FROM products WHERE id = ?`
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get product", err)
	}

	return toProduct(&record, r.statuses), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*entity.Product, error) {
	var records []entity.ProductRecord

	query := `SELECT id, name, description, status, stock, price, discount_type FROM products`
	err := r.db.SelectContext(ctx, &records, query)
	if err != nil {
		return nil, storageError("list products", err)
	}

	products := make([]*entity.Product, 0, len(records))
	for i := range records {
		products = append(products, toProduct(&records[i], r.statuses))
	}

	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, input *entity.ProductInput) (*entity.Product, error) {
	record, err := toRecord(newProductID(), input, r.statuses)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products (id, name, description, status, stock, price, discount_type) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, record.ID, record.Name, record.Description, record.StatusCode, record.Stock, record.Price, record.DiscountType)
	if err != nil {
		return nil, storageError("create product", err)
	}

	return toProduct(record, r.statuses), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, input *entity.ProductInput) (int64, error) {
	record, err := toRecord(id, input, r.statuses)
	if err != nil {
		return 0, err
	}

	query := `UPDATE products SET name = ?, description = ?, status = ?, stock = ?, price = ?, discount_type = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, record.Name, record.Description, record.StatusCode, record.Stock, record.Price, record.DiscountType, id)
	if err != nil {
		return 0, storageError("update product", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("update product", err)
	}
	return n, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM products WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, storageError("delete product", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("delete product", err)
	}
	return n, nil
}
