package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ModeAPI    = "api"
	ModeWorker = "worker"
	ModeAll    = "all"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Gateway  GatewayConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Email    EmailConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	Mode    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// GatewayConfig holds the payment gateway credentials and the fixed values
// sent with every transaction.
type GatewayConfig struct {
	BaseURL     string
	SecretKey   string
	Currency    string
	CallbackURL string
	ReturnURL   string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Password   string
	DB         int
	ListingTTL time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "travel-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_MODE", ModeAPI)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("CHAPA_BASE_URL", "https://api.chapa.co/v1")
	viper.SetDefault("PAYMENT_CURRENCY", "ETB")
	viper.SetDefault("PAYMENT_CALLBACK_URL", "http://localhost:8000/api/bookings/verify-payment/")
	viper.SetDefault("PAYMENT_RETURN_URL", "http://localhost:3000/payment-success")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "payment_notifications")
	viper.SetDefault("KAFKA_GROUP_ID", "travel-booking-notifier")
	viper.SetDefault("REDIS_ENABLED", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_LISTING_TTL", "5m")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM", "no-reply@travel-booking.local")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")

	viper.AutomaticEnv()

	// .env is optional; the process environment is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			Mode:    strings.ToLower(viper.GetString("APP_MODE")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			BaseURL:     strings.TrimRight(viper.GetString("CHAPA_BASE_URL"), "/"),
			SecretKey:   viper.GetString("CHAPA_SECRET_KEY"),
			Currency:    viper.GetString("PAYMENT_CURRENCY"),
			CallbackURL: viper.GetString("PAYMENT_CALLBACK_URL"),
			ReturnURL:   viper.GetString("PAYMENT_RETURN_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
			GroupID: viper.GetString("KAFKA_GROUP_ID"),
		},
		Redis: RedisConfig{
			Enabled:    viper.GetBool("REDIS_ENABLED"),
			Host:       viper.GetString("REDIS_HOST"),
			Port:       viper.GetString("REDIS_PORT"),
			Password:   viper.GetString("REDIS_PASSWORD"),
			DB:         viper.GetInt("REDIS_DB"),
			ListingTTL: viper.GetDuration("REDIS_LISTING_TTL"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Tracing: TracingConfig{
			Enabled:        viper.GetBool("TRACING_ENABLED"),
			JaegerEndpoint: viper.GetString("JAEGER_ENDPOINT"),
		},
	}

	return config, nil
}

// RunsAPI reports whether the HTTP server should start in this process.
func (c AppConfig) RunsAPI() bool {
	return c.Mode == ModeAPI || c.Mode == ModeAll
}

// RunsWorker reports whether the notification worker should start in this process.
func (c AppConfig) RunsWorker() bool {
	return c.Mode == ModeWorker || c.Mode == ModeAll
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
