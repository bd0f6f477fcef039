package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// JWTConfig defines the issuer/secret pair the auth collaborator signs with.
type JWTConfig struct {
	Issuer   string
	Audience string
	Secret   []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	Environment      string
	MongoURI         string
	MongoDatabase    string
	StoreCollection  string
	ReviewCollection string
	UserCollection   string
	Timeout          time.Duration
	JWT              JWTConfig
	AllowedOrigins   []string
	Logger           *logrus.Logger
}

// Load reads the environment (with .env support) and returns a fully
// populated Config. A missing JWT secret is fatal: without it every
// authenticated route would be dead on arrival.
func Load() Config {
	_ = godotenv.Load()

	environment := envOrDefault("APP_ENV", "development")
	logger := newLogger(environment)

	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MONGO_CONNECT_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		logger.Fatal("AUTH_JWT_SECRET must be configured")
	}

	return Config{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		Environment:      environment,
		MongoURI:         envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:    envOrDefault("MONGO_DB", "localbites"),
		StoreCollection:  envOrDefault("STORE_COLLECTION", "stores"),
		ReviewCollection: envOrDefault("REVIEW_COLLECTION", "reviews"),
		UserCollection:   envOrDefault("USER_COLLECTION", "users"),
		Timeout:          timeout,
		JWT: JWTConfig{
			Issuer:   envOrDefault("AUTH_JWT_ISSUER", "localbites-auth"),
			Audience: strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
			Secret:   []byte(secret),
		},
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		Logger:         logger,
	}
}

// newLogger builds the shared logrus instance: readable text locally,
// JSON everywhere else.
func newLogger(environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
