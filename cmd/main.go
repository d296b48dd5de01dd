package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"product-service/internal/api"
	"product-service/internal/cache"
	"product-service/internal/config"
	"product-service/internal/discount"
	"product-service/internal/logger"
	"product-service/internal/producer"
	"product-service/internal/repository"
	"product-service/internal/server"
	"product-service/internal/service"
)

//go:generate swag init --dir ../ --generalInfo cmd/main.go --output ../docs --parseInternal

//	@title			Product API
//	@version		1.0.0
//	@description	API documentation for product management
//	@BasePath		/
func main() {
	var envFile, port string

	rootCmd := &cobra.Command{
		Use:   "product-service",
		Short: "CRUD API for products with discount pricing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(envFile)
			if port != "" {
				cfg.Server.Port = port
			}
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path of an optional .env file")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port, overrides PORT")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Setup(cfg.Logger.Level, cfg.Server.AppEnv)

	accessLog, accessFile, err := logger.NewAccessLogger(cfg.Logger.Dir)
	if err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	defer accessFile.Close()

	statuses := cache.NewDefaultStatusCache()

	var store service.ProductStore
	switch cfg.Store.Driver {
	case "redis":
		rdb, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to redis")
			return err
		}
		defer rdb.Close()
		store = repository.NewRedisProductRepository(rdb, statuses)
		log.Info().Msgf("Connected to redis %s", cfg.Redis.Addr)
	default:
		db, err := config.ConnectDB(ctx, cfg.Store)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to connect to %s store", cfg.Store.Driver)
			return err
		}
		defer db.Close()
		store = repository.NewProductRepository(db, statuses)
		log.Info().Msgf("Connected to %s store", cfg.Store.Driver)
	}

	var events service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewProducer(producer.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		defer p.Close()
		events = p
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msgf("Publishing product events to %s", cfg.Kafka.Topic)
	}

	discounts := discount.NewClient(cfg.Discount.URL, &http.Client{Timeout: cfg.Discount.Timeout})
	productService := service.NewProductService(store, discounts, events)
	productHandler := api.NewProductHandler(productService, api.NewRequestValidator())

	e := server.New(cfg.Server, productHandler, accessLog)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server is running on port %s", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
