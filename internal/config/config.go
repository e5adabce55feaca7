package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv     string
	ServerPort string
	LogLevel   string

	DBDriver    string
	MySQLDSN    string
	PostgresDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret   string
	SwaggerHost string
	SiteURL     string
	WebRoot     string

	CloudinaryURL string
	StorageDir    string

	NotifyWebhookURL string
	NotifyWebhookKey string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	MailFrom         string
	BusinessEmail    string

	GoogleClientID     string
	GoogleClientSecret string

	// RequireEditorRole denies admin screens to signed-in users without the editor role.
	RequireEditorRole bool

	ReadRetryAttempts int
	ReadRetryDelay    time.Duration

	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:     strings.ToLower(getEnv("APP_ENV", "development")),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/rise?charset=utf8mb4&parseTime=True&loc=Local"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=rise port=5432 sslmode=disable"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
		SiteURL:     strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		WebRoot:     getEnv("WEB_ROOT", "web/dist"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		StorageDir:    getEnv("STORAGE_DIR", "uploads"),

		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookKey: os.Getenv("NOTIFY_WEBHOOK_KEY"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		MailFrom:         getEnv("MAIL_FROM", "Rise Advertising <no-reply@riseadvertising.com>"),
		BusinessEmail:    getEnv("BUSINESS_EMAIL", "info@riseadvertising.com"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),

		RequireEditorRole: getEnvBool("REQUIRE_EDITOR_ROLE", true),

		ReadRetryAttempts: getEnvInt("READ_RETRY_ATTEMPTS", 3),
		ReadRetryDelay:    time.Duration(getEnvInt("READ_RETRY_DELAY_MS", 1000)) * time.Millisecond,

		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@riseadvertising.com"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// SMTPConfigured reports whether enough SMTP settings exist to send mail.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

// GoogleConfigured reports whether Google sign-in credentials are present.
func (c *Config) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
