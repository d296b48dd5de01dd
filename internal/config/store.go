package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/stoolap/stoolap/pkg/driver"
	"product-service/migrations"
)

// ConnectDB opens the SQL store and makes sure the products table exists.
func ConnectDB(ctx context.Context, cfg StoreConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN

	switch cfg.Driver {
	case "mysql":
		// RowsAffected must count matched rows, not changed rows, for updates.
		mcfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		mcfg.ClientFoundRows = true
		dsn = mcfg.FormatDSN()
	case "stoolap":
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "stoolap" {
		// an in-memory engine lives in a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if err := migrations.AutoMigrateProducts(ctx, db.DB, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// NewRedisClient connects to redis and checks it answers.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return rdb, nil
}
