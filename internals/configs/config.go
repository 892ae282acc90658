package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs, resolved once at startup and
// passed down explicitly. Nothing else in the tree reads os.Getenv.
type Config struct {
	Port    string
	BaseURL string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	// Flutterwave
	FlwPublicKey     string
	FlwSecretKey     string
	FlwWebhookSecret string
	FlwBaseURL       string

	RedisAddr     string
	RedisPassword string

	SweeperEnabled bool
}

// Load reads .env (when present) and builds the Config. Missing critical
// keys are logged, not fatal, so local tooling can still boot partial flows.
func Load() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system ENV")
		}
	}

	cfg := &Config{
		Port:    GetEnv("PORT", "3000"),
		BaseURL: GetEnv("BASE_URL", "http://localhost:3000"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		JWTSecret: GetEnv("JWT_SECRET"),

		FlwPublicKey:     GetEnv("FLW_PUBLIC_KEY"),
		FlwSecretKey:     GetEnv("FLW_SECRET_KEY"),
		FlwWebhookSecret: GetEnv("FLW_WEBHOOK_SECRET"),
		FlwBaseURL:       GetEnv("FLW_BASE_URL", "https://api.flutterwave.com"),

		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),

		SweeperEnabled: getBool("PAYMENT_SWEEPER_ENABLED", true),
	}

	for _, k := range []struct{ name, val string }{
		{"JWT_SECRET", cfg.JWTSecret},
		{"FLW_SECRET_KEY", cfg.FlwSecretKey},
		{"FLW_WEBHOOK_SECRET", cfg.FlwWebhookSecret},
	} {
		if k.val == "" {
			log.Printf("[WARN] %s is not set", k.name)
		}
	}

	return cfg
}

// DSN builds the Postgres connection string. statement_timeout keeps runaway
// queries aligned with the HTTP timeout guard.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=confhub&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
