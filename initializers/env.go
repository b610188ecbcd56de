package initializers

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	GinMode  string
	DBDriver string
	DBURL    string

	JWTSecret string
	JWTTTL    time.Duration

	AllowedOrigins     []string
	AllowSelfPromotion bool

	AdminEmail    string
	AdminPassword string

	S3Bucket string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string

	KafkaBrokers    []string
	KafkaOrderTopic string

	RedisURL string

	FromEmail         string
	FromEmailPassword string
	FromEmailSMTP     string
	SMTPAddress       string
	FrontendURL       string

	OtelEnabled  bool
	OtelEndpoint string
}

var Config AppConfig

// LoadEnv reads .env when present and fills Config from the environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("no .env file found, using process environment")
	}
	Config = ConfigFromEnv()
}

func ConfigFromEnv() AppConfig {
	return AppConfig{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBURL:    os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		AllowSelfPromotion: getBool("ALLOW_SELF_PROMOTION", false),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		S3Bucket: os.Getenv("AWS_S3_BUCKET"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),

		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order.created"),

		RedisURL: os.Getenv("REDIS_URL"),

		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		FromEmailSMTP:     os.Getenv("FROM_EMAIL_SMTP"),
		SMTPAddress:       os.Getenv("SMTP_ADDRESS"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),

		OtelEnabled:  getBool("OTEL_ENABLED", false),
		OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
