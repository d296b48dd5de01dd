package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
	"product-service/internal/cache"
	"product-service/internal/entity"
)

const productIndexKey = "products"

// RedisProductRepository stores each product as a JSON document under
// product:<id> and tracks identifiers in the products set.
type RedisProductRepository struct {
	rdb      *redis.Client
	statuses *cache.StatusCache
}

func NewRedisProductRepository(rdb *redis.Client, statuses *cache.StatusCache) *RedisProductRepository {
	return &RedisProductRepository{rdb: rdb, statuses: statuses}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *RedisProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	data, err := r.rdb.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, storageError("get product", err)
	}

	var record entity.ProductRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, storageError("get product", err)
	}

	return toProduct(&record, r.statuses), nil
}

func (r *RedisProductRepository) GetAll(ctx context.Context) ([]*entity.Product, error) {
	ids, err := r.rdb.SMembers(ctx, productIndexKey).Result()
	if err != nil {
		return nil, storageError("list products", err)
	}

	products := make([]*entity.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	sort.Strings(ids)
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageError("list products", err)
	}

	for _, value := range values {
		// removed between SMEMBERS and MGET
		data, ok := value.(string)
		if !ok {
			continue
		}

		var record entity.ProductRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, storageError("list products", err)
		}
		products = append(products, toProduct(&record, r.statuses))
	}

	return products, nil
}

func (r *RedisProductRepository) Create(ctx context.Context, input *entity.ProductInput) (*entity.Product, error) {
	record, err := toRecord(newProductID(), input, r.statuses)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, storageError("create product", err)
	}

	created, err := r.rdb.SetNX(ctx, productKey(record.ID), data, 0).Result()
	if err != nil {
		return nil, storageError("create product", err)
	}
	if !created {
		return nil, storageError("create product", fmt.Errorf("duplicate id %s", record.ID))
	}

	if err := r.rdb.SAdd(ctx, productIndexKey, record.ID).Err(); err != nil {
		return nil, storageError("create product", err)
	}

	return toProduct(record, r.statuses), nil
}

func (r *RedisProductRepository) Update(ctx context.Context, id string, input *entity.ProductInput) (int64, error) {
	record, err := toRecord(id, input, r.statuses)
	if err != nil {
		return 0, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return 0, storageError("update product", err)
	}

	updated, err := r.rdb.SetXX(ctx, productKey(id), data, 0).Result()
	if err != nil {
		return 0, storageError("update product", err)
	}
	if !updated {
		return 0, nil
	}
	return 1, nil
}

func (r *RedisProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, productKey(id))
		pipe.SRem(ctx, productIndexKey, id)
		return nil
	})
	if err != nil {
		return 0, storageError("delete product", err)
	}

	return del.Val(), nil
}
