package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"product-service/internal/discount"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Discount DiscountConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	AppEnv    string
	Port      string
	RateLimit float64 // requests per second per client, 0 disables
	RateBurst int
}

type LoggerConfig struct {
	Level string
	Dir   string
}

type StoreConfig struct {
	Driver string // stoolap, mysql or redis
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DiscountConfig struct {
	URL     string
	Timeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads the configuration from the environment after loading envFile,
// if it exists.
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	return &Config{
		Server: ServerConfig{
			AppEnv:    getEnv("APP_ENV", "development"),
			Port:      getEnv("PORT", "3000"),
			RateLimit: getEnvFloat("RATE_LIMIT", 0),
			RateBurst: getEnvInt("RATE_BURST", 3),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Dir:   getEnv("LOG_DIR", "tmp/logs"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "stoolap"),
			DSN:    getEnv("STORE_DSN", "memory://"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Discount: DiscountConfig{
			URL:     getEnv("DISCOUNT_URL", discount.DefaultURL),
			Timeout: time.Duration(getEnvInt("DISCOUNT_TIMEOUT", 0)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "product-topic"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
