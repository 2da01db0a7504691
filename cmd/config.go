package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionTTL is how long a session survives without a heartbeat.
const DefaultSessionTTL = 30 * time.Minute

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	JWTSecret     string
	SessionTTL    time.Duration
	SweepSchedule string
	RedisAddr     string
	RedisPassword string
	RabbitMQURL   string
	EventsQueue   string
}

// LoadConfig reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win over it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	config := Config{
		HTTPPort:      envOr("HTTP_PORT", "8080"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        envOr("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOr("DB_SSLMODE", "disable"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    DefaultSessionTTL,
		SweepSchedule: os.Getenv("SWEEP_SCHEDULE"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		EventsQueue:   os.Getenv("EVENTS_QUEUE"),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", raw, err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: must be positive", raw)
		}
		config.SessionTTL = ttl
	}

	if config.DBHost == "" || config.DBUser == "" || config.DBName == "" {
		return Config{}, fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required")
	}
	return config, nil
}

// DSN returns the PostgreSQL connection string for gorm and goose.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
