package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Port     string
	LogLevel string

	DatabaseURL       string
	MaxOpenConns      int
	MaxIdleConns      int
	ConnMaxLifetime   time.Duration
	ConnectRetries    int
	ConnectRetryDelay time.Duration

	CORSOrigins          []string
	SlowRequestThreshold time.Duration

	DefaultVATRate float64
	Timezone       string

	StaffReminderCron string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
}

func Load() Settings {
	return Settings{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL:       getEnv("DB_URL", ""),
		MaxOpenConns:      getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:      getEnvInt("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime:   getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnectRetries:    getEnvInt("DB_CONNECT_RETRIES", 5),
		ConnectRetryDelay: getEnvDuration("DB_CONNECT_RETRY_DELAY", 2*time.Second),

		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SlowRequestThreshold: getEnvDuration("SLOW_REQUEST_THRESHOLD", 200*time.Millisecond),

		DefaultVATRate: getEnvFloat("DEFAULT_VAT_RATE", 23),
		Timezone:       getEnv("APP_TIMEZONE", "Europe/Lisbon"),

		StaffReminderCron: getEnv("STAFF_REMINDER_CRON", "0 9 * * *"),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SMSEnabled reports whether every Twilio credential is present.
func (s Settings) SMSEnabled() bool {
	return s.TwilioAccountSID != "" && s.TwilioAuthToken != "" && s.TwilioPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
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
