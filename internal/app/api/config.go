package api

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/cafe-api/internal/auth"
	platformkafka "github.com/Apurer/cafe-api/internal/platform/kafka"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	AppEnv            string
	JWTSecret         []byte
	JWTTTL            time.Duration
	JWTIssuer         string
	AuthPolicyFile    string
	AllowedOrigin     string
	KafkaBrokers      []string
	KafkaOrderTopic   string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SeedMenu          bool

	// GeneratedSecret is set when a throwaway signing key was created for local development.
	GeneratedSecret bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AppEnv:            envDefault("APP_ENV", "production"),
		JWTIssuer:         envDefault("JWT_ISSUER", auth.DefaultIssuer),
		AuthPolicyFile:    strings.TrimSpace(os.Getenv("AUTH_POLICY_FILE")),
		AllowedOrigin:     envDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		KafkaBrokers:      platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:   envDefault("KAFKA_ORDER_TOPIC", platformkafka.DefaultOrderTopic),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedMenu:          isTruthy(os.Getenv("SEED_MENU")),
	}

	ttl, err := time.ParseDuration(envDefault("JWT_TTL", auth.DefaultTokenTTL.String()))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be a positive duration")
	}
	cfg.JWTTTL = ttl

	if !strings.HasPrefix(cfg.AllowedOrigin, "http://") && !strings.HasPrefix(cfg.AllowedOrigin, "https://") {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGIN must be an http(s) origin, got %q", cfg.AllowedOrigin)
	}

	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret == "" && cfg.AppEnv == "local":
		generated, err := generateSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret, cfg.GeneratedSecret = generated, true
	case secret == "":
		return Config{}, errors.New("JWT_SECRET is required")
	case len(secret) < auth.MinSecretLength:
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes", auth.MinSecretLength)
	default:
		cfg.JWTSecret = []byte(secret)
	}
	return cfg, nil
}

func generateSecret() ([]byte, error) {
	secret := make([]byte, auth.MinSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate development secret: %w", err)
	}
	return secret, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
