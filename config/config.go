package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string
	Env  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string

	DBMaxOpenConns int
	DBMaxIdleConns int

	EmailProvider  string // "smtp" or "sendgrid"
	GmailUser      string
	GmailPass      string // Gmail app password
	SendGridApiKey string

	OTPHashSecret string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "3001"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", ""),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "restaurant_app"),
		DBPort:     getEnv("DB_PORT", "5432"),
		SQLitePath: getEnv("SQLITE_PATH", "restaurant_app.db"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		EmailProvider:  getEnv("EMAIL_PROVIDER", "smtp"),
		GmailUser:      getEnv("GMAIL_USER", ""),
		GmailPass:      getEnv("GMAIL_PASS", ""),
		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),

		OTPHashSecret: getEnv("OTP_HASH_SECRET", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.OTPHashSecret == "defaultSecret" {
		log.Println("Warning: Using default OTP_HASH_SECRET. Update it in your environment.")
	}
	if AppConfig.GmailUser == "" && AppConfig.SendGridApiKey == "" {
		log.Println("Warning: No email credentials configured. OTP delivery will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
