package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Fees struct {
	MonthlyFee      float64
	RegistrationFee float64
	PerDayRate      float64
}

type Config struct {
	DatabaseURL      string
	DatabaseDriver   string
	JWTSecret        string
	EncryptionKey    string
	Port             string
	Environment      string
	LogLevel         string
	Fees             Fees
	RedisAddr        string
	ResendAPIKey     string
	MailFrom         string
	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSBucket        string
	ReminderSchedule string
	CORSOrigins      []string
	TrustedProxies   []string
}

func Load() *Config {
	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "hostel.db"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "pgx"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		EncryptionKey:  getEnv("ENCRYPTION_KEY", "HostelHub2025SecureKey1234567890"),
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Fees: Fees{
			MonthlyFee:      getEnvFloat("MONTHLY_FEE", 3500),
			RegistrationFee: getEnvFloat("REGISTRATION_FEE", 6000),
			PerDayRate:      getEnvFloat("PER_DAY_RATE", 200),
		},
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		MailFrom:         getEnv("MAIL_FROM", "Support <support@hostelhub.local>"),
		OSSEndpoint:      getEnv("ALI_OSS_ENDPOINT", ""),
		OSSAccessKey:     getEnv("ALI_OSS_ACCESS_KEY", ""),
		OSSSecretKey:     getEnv("ALI_OSS_SECRET_KEY", ""),
		OSSBucket:        getEnv("ALI_OSS_BUCKET", ""),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", ""),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		TrustedProxies:   getEnvList("TRUSTED_PROXIES", nil),
	}
}

// DefaultFees returns the fee schedule used when nothing is overridden.
func DefaultFees() Fees {
	return Fees{MonthlyFee: 3500, RegistrationFee: 6000, PerDayRate: 200}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Printf("WARNING: ignoring invalid %s=%q, using %.0f", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func ValidateConfig(cfg *Config) {
	if len(cfg.EncryptionKey) != 32 {
		log.Fatalf("ENCRYPTION_KEY must be exactly 32 characters, got %d", len(cfg.EncryptionKey))
	}
	if cfg.DatabaseDriver != "pgx" && cfg.DatabaseDriver != "pq" {
		log.Fatalf("DATABASE_DRIVER must be pgx or pq, got %q", cfg.DatabaseDriver)
	}
	if len(cfg.JWTSecret) < 32 {
		log.Printf("WARNING: JWT_SECRET should be at least 32 characters for security")
	}
	if cfg.Fees.MonthlyFee == cfg.Fees.RegistrationFee {
		log.Fatalf("MONTHLY_FEE and REGISTRATION_FEE must differ, both are %.0f", cfg.Fees.MonthlyFee)
	}
	if cfg.Environment == "production" && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Printf("WARNING: Change JWT_SECRET in production environment")
	}
}
