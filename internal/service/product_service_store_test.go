package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-service/internal/cache"
	"product-service/internal/config"
	"product-service/internal/entity"
	"product-service/internal/repository"
)

func newStoreBackedService(t *testing.T, discounts DiscountFetcher) *ProductService {
	t.Helper()

	db, err := config.ConnectDB(context.Background(), config.StoreConfig{Driver: "stoolap", DSN: "memory://"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`DELETE FROM products`)
	require.NoError(t, err)

	return NewProductService(repository.NewProductRepository(db, cache.NewDefaultStatusCache()), discounts, nil)
}

func TestProductService_StoreUnknownID(t *testing.T) {
	discounts := &fakeDiscounts{}
	svc := newStoreBackedService(t, discounts)
	ctx := context.Background()

	got, err := svc.GetProductByID(ctx, "nosuchid")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, discounts.calls)

	updated, err := svc.UpdateProduct(ctx, "nosuchid", &entity.ProductInput{
		Name: "X", Description: "Y", Status: "active", Stock: 1, Price: 1, DiscountType: "1",
	})
	require.NoError(t, err)
	assert.Nil(t, updated)

	n, err := svc.DeleteProduct(ctx, "nosuchid")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestProductService_StoreRoundTrip(t *testing.T) {
	discounts := &fakeDiscounts{rule: &entity.DiscountRule{ID: "1", Enablement: true, Discount: 0.25}}
	svc := newStoreBackedService(t, discounts)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &entity.ProductInput{
		Name: "X", Description: "Y", Status: "active", Stock: 10, Price: 40, DiscountType: "1",
	})
	require.NoError(t, err)

	got, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "active", got.Status)
	require.NotNil(t, got.FinalPrice)
	assert.InDelta(t, 30.0, *got.FinalPrice, 1e-9)
	assert.Equal(t, []string{"1"}, discounts.calls)

	updated, err := svc.UpdateProduct(ctx, created.ID, &entity.ProductInput{
		Name: "X2", Description: "Y2", Status: "inactive", Stock: 0, Price: 40, DiscountType: "1",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "inactive", updated.Status)

	all, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].FinalPrice)

	n, err := svc.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
