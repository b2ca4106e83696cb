package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
)

type Config struct {
	Tokens jwtx.IssuerConfig // Required: secret and expiration for each token kind, no defaults

	Transport        string // Optional: where access and refresh tokens travel (header, cookie) (default: header)
	TwoFactorEnabled bool   // Optional: email a confirmation link at login and gate protected routes (default: false)
	RotateRefresh    bool   // Optional: replace the refresh token on every refresh (default: false)
	SeedDemo         bool   // Optional: seed demo users and posts into an empty database (default: false)
	SeedPassword     string // Optional: password for the demo accounts (default: "password" in dev, generated otherwise)

	SMTP   mailx.SMTPConfig // Optional: SMTP relay; mail is only logged when Host is empty
	AppURL string           // Optional: public URL the two-factor link points at (default: http://localhost:3000)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Tokens: jwtx.IssuerConfig{
			Access:    tokenConfig("JWT_ACCESS_TOKEN"),
			Refresh:   tokenConfig("JWT_REFRESH_TOKEN"),
			TwoFactor: tokenConfig("JWT_TWO_FACTOR_TOKEN"),
		},
		Transport:        getEnvOrDefault("AUTH_TOKEN_TRANSPORT", "header"),
		TwoFactorEnabled: getEnvBoolOrDefault("AUTH_TWO_FACTOR_ENABLED", false),
		RotateRefresh:    getEnvBoolOrDefault("AUTH_REFRESH_ROTATION", false),
		SeedDemo:         getEnvBoolOrDefault("AUTH_SEED_DEMO", false),
		SeedPassword:     os.Getenv("AUTH_SEED_PASSWORD"), // Resolved in app.New when empty
		SMTP: mailx.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Secure:   getEnvBoolOrDefault("SMTP_SECURE", false),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			FromName: getEnvOrDefault("SMTP_FROM_NAME", "Tollgate"),
			FromAddr: os.Getenv("SMTP_FROM_ADDRESS"),
		},
		AppURL:               getEnvOrDefault("APP_URL", "http://localhost:3000"),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

// tokenConfig reads <prefix>_SECRET and <prefix>_EXPIRATION. Missing values
// stay zero and are reported by Issuer.Validate.
func tokenConfig(prefix string) jwtx.KindConfig {
	return jwtx.KindConfig{
		Secret: os.Getenv(prefix + "_SECRET"),
		TTL:    getEnvDurationOrDefault(prefix+"_EXPIRATION", 0),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, ok := parseDuration(os.Getenv(key)); ok {
		return d
	}
	return defaultValue
}

// parseDuration accepts Go durations ("1h", "30m", "90s"), whole days ("7d")
// and bare integers, which are minutes.
func parseDuration(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration, true
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, true
		}
	}

	// Integer minutes, for backwards compatibility
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute, true
	}

	return 0, false
}
