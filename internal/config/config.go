package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	ListenAddr       string
	BaseURL          string
	AuthCookieSecure bool
	SessionSecret    string
	SessionTTL       time.Duration
	SessionRefresh   time.Duration

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr     string
	RedisPassword string

	PaystackSecretKey string
	PaystackBaseURL   string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	ChromePath string

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewDeliveryConfigHolder),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:             getenv("APP_SERVICE", "passgate"),
		AppVersion:          getenv("APP_VERSION", "0.1.0"),
		Environment:         environment,
		ListenAddr:          getenv("LISTEN_ADDR", ":8080"),
		BaseURL:             strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		AuthCookieSecure:    authCookieSecure,
		SessionSecret:       strings.TrimSpace(getenv("SESSION_SECRET", "")),
		SessionTTL:          getenvDuration("SESSION_TTL", 8*time.Hour),
		SessionRefresh:      getenvDuration("SESSION_REFRESH_WINDOW", time.Hour),
		OTLPEndpoint:        getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:              getenv("DATABASE_TYPE", "postgres"),
		DBHost:              getenv("DATABASE_HOST", "localhost"),
		DBPort:              getenv("DATABASE_PORT", "5432"),
		DBName:              getenv("DATABASE_NAME", "passgate"),
		DBUser:              getenv("DATABASE_USER", "postgres"),
		DBPassword:          getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:           getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:       getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:       getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime:   getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		RedisAddr:           strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:       getenv("REDIS_PASSWORD", ""),
		PaystackSecretKey:   strings.TrimSpace(getenv("PAYSTACK_SECRET_KEY", "")),
		PaystackBaseURL:     strings.TrimRight(getenv("PAYSTACK_BASE_URL", "https://api.paystack.co"), "/"),
		TwilioAccountSID:    strings.TrimSpace(getenv("TWILIO_ACCOUNT_SID", "")),
		TwilioAuthToken:     strings.TrimSpace(getenv("TWILIO_AUTH_TOKEN", "")),
		TwilioFrom:          strings.TrimSpace(getenv("TWILIO_PHONE_NUMBER", "")),
		CloudinaryCloudName: strings.TrimSpace(getenv("CLOUDINARY_CLOUD_NAME", "")),
		CloudinaryAPIKey:    strings.TrimSpace(getenv("CLOUDINARY_API_KEY", "")),
		CloudinaryAPISecret: strings.TrimSpace(getenv("CLOUDINARY_API_SECRET", "")),
		SMTPHost:            getenv("SMTP_HOST", ""),
		SMTPPort:            getenvInt("SMTP_PORT", 587),
		SMTPUsername:        getenv("SMTP_USERNAME", ""),
		SMTPPassword:        getenv("SMTP_PASSWORD", ""),
		SMTPFrom:            getenv("SMTP_FROM", ""),
		ChromePath:          strings.TrimSpace(getenv("CHROME_PATH", "")),
		SeedAdminEmail:      strings.TrimSpace(getenv("SEED_ADMIN_EMAIL", "")),
		SeedAdminPassword:   getenv("SEED_ADMIN_PASSWORD", ""),
		SeedAdminName:       getenv("SEED_ADMIN_NAME", ""),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
