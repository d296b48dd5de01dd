package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/stoolap/stoolap/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-service/internal/cache"
	"product-service/internal/entity"
	"product-service/migrations"
)

func newTestRepository(t *testing.T) (*ProductRepository, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Open("stoolap", "memory://")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, migrations.AutoMigrateProducts(ctx, db.DB, "stoolap"))
	_, err = db.ExecContext(ctx, `DELETE FROM products`)
	require.NoError(t, err)

	return NewProductRepository(db, cache.NewDefaultStatusCache()), db
}

func sampleInput() *entity.ProductInput {
	return &entity.ProductInput{
		Name:         "X",
		Description:  "Y",
		Status:       "active",
		Stock:        10,
		Price:        29,
		DiscountType: "1",
	}
}

func TestProductRepository_CreateAndGetByID(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Regexp(t, `^[a-zA-Z0-9]+$`, created.ID)
	assert.Equal(t, "active", created.Status)
	assert.Nil(t, created.Discount)
	assert.Nil(t, created.FinalPrice)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, got)
}

func TestProductRepository_CreateStatusRoundTrip(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()
	statuses := cache.NewDefaultStatusCache()

	for _, status := range []string{"active", "inactive"} {
		input := sampleInput()
		input.Status = status

		created, err := repo.Create(ctx, input)
		require.NoError(t, err)

		var code int
		require.NoError(t, db.GetContext(ctx, &code, `SELECT status FROM products WHERE id = ?`, created.ID))
		want, ok := statuses.Code(status)
		require.True(t, ok)
		assert.Equal(t, want, code)

		label, ok := statuses.Label(code)
		require.True(t, ok)
		assert.Equal(t, status, label)
		assert.Equal(t, status, created.Status)
	}
}

func TestProductRepository_CreateUnknownStatus(t *testing.T) {
	repo, _ := newTestRepository(t)
	input := sampleInput()
	input.Status = "archived"

	_, err := repo.Create(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStatus))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepository_GetByIDNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, err := repo.GetByID(context.Background(), "doesnotexist")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_GetByIDReadsEveryColumn(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO products (id, name, description, status, stock, price, discount_type) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"abc123", "Lamp", "Desk lamp", 0, 4, 12.5, "3")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, &entity.Product{
		ID:           "abc123",
		Name:         "Lamp",
		Description:  "Desk lamp",
		Status:       "inactive",
		Stock:        4,
		Price:        12.5,
		DiscountType: "3",
	}, got)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, got, all[0])
}

func TestProductRepository_GetAll(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = repo.Create(ctx, sampleInput())
	require.NoError(t, err)
	inactive := sampleInput()
	inactive.Status = "inactive"
	_, err = repo.Create(ctx, inactive)
	require.NoError(t, err)

	// a record whose status code has no label is still listed
	_, err = db.ExecContext(ctx, `INSERT INTO products (id, name, description, status, stock, price, discount_type) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"legacy1", "Legacy", "Old record", 7, 1, 5.5, "2")
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	statuses := map[string]string{}
	for _, p := range all {
		statuses[p.ID] = p.Status
	}
	assert.Equal(t, "", statuses["legacy1"])

	counts := map[string]int{}
	for _, s := range statuses {
		counts[s]++
	}
	assert.Equal(t, 1, counts["active"])
	assert.Equal(t, 1, counts["inactive"])
}

func TestProductRepository_Update(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	input := &entity.ProductInput{
		Name:         "Updated Product",
		Description:  "Updated description",
		Status:       "inactive",
		Stock:        5,
		Price:        19.5,
		DiscountType: "2",
	}
	n, err := repo.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Updated Product", got.Name)
	assert.Equal(t, "Updated description", got.Description)
	assert.Equal(t, "inactive", got.Status)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, 19.5, got.Price)
	assert.Equal(t, "2", got.DiscountType)
}

func TestProductRepository_UpdateNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	n, err := repo.Update(context.Background(), "missing", sampleInput())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestProductRepository_Delete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	n, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestProductRepository_DeleteNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	n, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestProductRepository_StorageError(t *testing.T) {
	repo, db := newTestRepository(t)
	require.NoError(t, db.Close())

	_, err := repo.GetAll(context.Background())
	require.Error(t, err)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "list products", storageErr.Op)

	_, err = repo.GetByID(context.Background(), "abc")
	assert.True(t, errors.As(err, &storageErr))

	_, err = repo.Delete(context.Background(), "abc")
	assert.True(t, errors.As(err, &storageErr))
}
