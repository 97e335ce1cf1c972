package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv             string
	AppAddr            string
	CORSAllowedOrigins []string
	PublicBaseURL      string

	// TemplateURL is the fixed remote location of the purchase email template.
	TemplateURL string

	EmailProvider string // resend | smtp | log
	ResendAPIKey  string
	EmailFrom     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	HTTPTimeout time.Duration

	RateLimitStore    string // memory | redis
	RedisAddr         string
	RedisDB           int
	WebhookRateLimit  int
	WebhookRateWindow time.Duration
}

func Load() (Config, error) {
	c := Config{}

	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppAddr = getEnv("APP_ADDR", ":8080")
	c.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
	c.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080")

	c.TemplateURL = getEnv("TEMPLATE_URL", "http://localhost:8081/email-template.html")

	c.EmailProvider = strings.ToLower(getEnv("EMAIL_PROVIDER", "resend"))
	c.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	c.EmailFrom = getEnv("EMAIL_FROM", "orders@local.dev")

	c.SMTPHost = getEnv("SMTP_HOST", "localhost")
	c.SMTPPort = getInt("SMTP_PORT", 1025)
	c.SMTPUsername = getEnv("SMTP_USERNAME", "")
	c.SMTPPassword = getEnv("SMTP_PASSWORD", "")

	c.HTTPTimeout = getDuration("HTTP_TIMEOUT", 10*time.Second)

	store := strings.ToLower(getEnv("RATE_LIMIT_STORE", "memory"))
	if store != "memory" && store != "redis" {
		store = "memory"
	}
	c.RateLimitStore = store
	c.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	c.RedisDB = getInt("REDIS_DB", 0)
	c.WebhookRateLimit = getInt("WEBHOOK_RATE_LIMIT", 120)
	c.WebhookRateWindow = getDuration("WEBHOOK_RATE_WINDOW", time.Minute)

	return c, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	if len(res) == 0 {
		return []string{"*"}
	}
	return res
}

func (c Config) String() string {
	return fmt.Sprintf("env=%s addr=%s provider=%s template=%s", c.AppEnv, c.AppAddr, c.EmailProvider, c.TemplateURL)
}
