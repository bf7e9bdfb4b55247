package initializers

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	Environment string

	DBDriver string
	DBDSN    string

	JWTSecret    string
	CookieSecure bool
	CORSOrigins  []string

	AdminUsername string
	AdminPassword string

	BuilderSessionTTL time.Duration

	InquiryNotifyEmail string

	PublishBucket string
	PublishPrefix string
}

var Config AppConfig

// LoadEnv reads .env (if present) and populates Config.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// Environment variables may come from the process instead.
		Log.Debugw("no .env file loaded", "error", err)
	}
	Config = configFromEnv()
}

func configFromEnv() AppConfig {
	ttl, err := time.ParseDuration(getEnv("BUILDER_SESSION_TTL", "2h"))
	if err != nil || ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return AppConfig{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "dev"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:              getEnv("DB_DSN", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CookieSecure:       getEnv("COOKIE_SECURE", "false") == "true",
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		BuilderSessionTTL:  ttl,
		InquiryNotifyEmail: getEnv("INQUIRY_NOTIFY_EMAIL", ""),
		PublishBucket:      getEnv("PUBLISH_BUCKET", ""),
		PublishPrefix:      strings.Trim(getEnv("PUBLISH_PREFIX", "pages"), "/"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
