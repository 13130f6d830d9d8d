package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every knob the process reads from the environment. It is
// built once in main and passed into constructors; nothing reads os.Getenv
// after startup.
type Config struct {
	HTTPPort string

	// DatabaseURL selects the backend: empty means the embedded SQLite file
	// at SQLitePath, anything else is a postgres:// connection URL.
	DatabaseURL string
	SQLitePath  string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	SMTP    SMTP
	Company Company

	Debug bool
}

// SMTP holds the outbound mail relay credentials. Any missing field means
// notifications are disabled, not misconfigured.
type SMTP struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Recipient string
}

// Enabled reports whether the relay is fully configured.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.Username != "" && s.Password != "" && s.Recipient != ""
}

// Company is the identity block printed on invoices.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Load reads an optional .env file and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// No .env file is the normal case outside local development.
		_ = err
	}

	return &Config{
		HTTPPort:          getenv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getenv("SQLITE_PATH", "database.db"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SMTP: SMTP{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getenvInt("SMTP_PORT", 587),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			Recipient: os.Getenv("NOTIFY_RECIPIENT"),
		},
		Company: Company{
			Name:    getenv("COMPANY_NAME", "Om Industries India"),
			Address: getenv("COMPANY_ADDRESS", ""),
			Phone:   getenv("COMPANY_PHONE", ""),
			Email:   getenv("COMPANY_EMAIL", ""),
		},
		Debug: os.Getenv("DEBUG") == "1",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
