package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production.
// It is public and must never protect real data.
const DevJWTSecret = "fallback-secret-key-for-dev-only"

// Config holds application configuration
type Config struct {
	// Server
	Env         string
	Port        string
	LogLevel    string
	CORSOrigins []string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	SQLitePath     string
	MigrationsPath string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Seeding
	SeedDemoData  bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	config := &Config{
		// Server
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		// Database
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "moneyhub"),
		DBPassword:     getEnv("DB_PASSWORD", "moneyhub"),
		DBName:         getEnv("DB_NAME", "moneyhub"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SQLitePath:     getEnv("SQLITE_PATH", "moneyhub.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		// JWT
		JWTSecret: os.Getenv("JWT_SECRET"),

		// Seeding
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@moneyhub.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", config.DBDriver)
	}

	if config.JWTSecret == "" {
		if config.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET not set, using insecure development secret")
		config.JWTSecret = DevJWTSecret
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "168h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil || expDur <= 0 {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 168h\n", expStr)
		expDur = 7 * 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}
	config.SeedDemoData = seed

	if config.AdminPassword == "" {
		if config.IsProduction() && seed {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set when seeding in production")
		}
		config.AdminPassword = "admin123"
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
