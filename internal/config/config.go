package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "github.com/brandonbohn/adebackend/common/config"
)

// Config ade-data HTTP API settings
type Config struct {
	HTTP struct {
		Addr           string
		CORSOrigins    []string
		RateLimitRPS   float64 // public submissions per client IP; 0 disables
		RateLimitBurst int
		TrustedProxies []string // peers whose X-Forwarded-For is believed
	}
	DBEnabled    bool
	Database     commoncfg.DatabaseConfig
	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	Events       struct {
		Stream string
		MaxLen int64 // approximate XADD cap; 0 leaves the stream uncapped
	}
	Content struct {
		CacheTTL time.Duration
	}
	Cart struct {
		TTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	MQTT     MQTTConfig
	Email    EmailConfig
	Payments PaymentsConfig
	Admin    AdminConfig
}

// MQTTConfig admin alert publishing (disabled by default)
type MQTTConfig struct {
	Enabled    bool
	Broker     commoncfg.MQTTConfig
	AlertTopic string
}

// EmailConfig outbound email gateway
type EmailConfig struct {
	APIURL     string // empty: log-only mailer
	APIKey     string
	From       string
	AdminEmail string // empty: no admin notification
}

// PaymentsConfig redirect targets and provider accounts
type PaymentsConfig struct {
	FrontendURL          string
	APIURL               string
	PayPalEmail          string
	FlutterwavePublicKey string
	SuccessURL           string
	CancelURL            string
}

// AdminConfig admin login and token signing
type AdminConfig struct {
	JWTSecret    string
	Username     string
	PasswordHash string // bcrypt; empty disables login
	TokenTTL     time.Duration
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":5000")
	cfg.HTTP.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	cfg.HTTP.RateLimitRPS = parseFloat(getEnv("RATE_LIMIT_RPS", "1"), 1)
	cfg.HTTP.RateLimitBurst = parseInt(getEnv("RATE_LIMIT_BURST", "5"), 5)
	cfg.HTTP.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	// Without a reachable DB the service falls back to the memory store.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "ade")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Events.Stream = getEnv("EVENTS_STREAM", "ade:events")
	cfg.Events.MaxLen = int64(parseInt(getEnv("EVENTS_STREAM_MAXLEN", "100000"), 100000))
	cfg.Content.CacheTTL = time.Duration(parseInt(getEnv("CONTENT_CACHE_TTL", "300"), 300)) * time.Second
	cfg.Cart.TTL = time.Duration(parseInt(getEnv("CART_TTL_HOURS", "24"), 24)) * time.Hour

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.Broker.ClientID = getEnv("MQTT_CLIENT_ID", "ade-data")
	cfg.MQTT.Broker.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Broker.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Broker.QoS = 1
	cfg.MQTT.AlertTopic = getEnv("MQTT_ALERT_TOPIC", "ade/admin/alerts")

	cfg.Email.APIURL = getEnv("EMAIL_API_URL", "")
	cfg.Email.APIKey = getEnv("EMAIL_API_KEY", "")
	cfg.Email.From = getEnv("EMAIL_FROM", "noreply@ade.org")
	cfg.Email.AdminEmail = getEnv("ADMIN_EMAIL", "")

	cfg.Payments.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/")
	cfg.Payments.APIURL = strings.TrimRight(getEnv("API_URL", "http://localhost:5000"), "/")
	cfg.Payments.PayPalEmail = getEnv("PAYPAL_EMAIL", "")
	cfg.Payments.FlutterwavePublicKey = getEnv("FLUTTERWAVE_PUBLIC_KEY", "")
	cfg.Payments.SuccessURL = getEnv("DONATION_SUCCESS_URL", cfg.Payments.FrontendURL+"/donation-success")
	cfg.Payments.CancelURL = getEnv("DONATION_CANCEL_URL", cfg.Payments.FrontendURL+"/donate?cancelled=true")

	cfg.Admin.JWTSecret = getEnv("JWT_SECRET", "change-me")
	cfg.Admin.Username = getEnv("ADMIN_USERNAME", "admin")
	cfg.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	cfg.Admin.TokenTTL = time.Duration(parseInt(getEnv("ADMIN_TOKEN_TTL_HOURS", "24"), 24)) * time.Hour

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
