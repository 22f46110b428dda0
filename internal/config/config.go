package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores all configuration of the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Log      LogConfig
}

// ServerConfig - HTTP server settings
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// DatabaseConfig - MySQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN returns the MySQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// RedisConfig - settings for the session token blacklist.
// An empty Addr disables redis entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig - session token settings
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// AdminConfig - bootstrap credentials for the default admin account,
// created at startup when no staff user exists yet.
type AdminConfig struct {
	Username string
	Password string
}

// LogConfig - log file settings
type LogConfig struct {
	File string
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			CORSOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "employee_mgmt"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Admin: AdminConfig{
			Username: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
			Password: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		},
		Log: LogConfig{
			File: getEnv("LOG_FILE", "logs/employee-mgmt.log"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

// getEnv reads an environment variable with a default fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt reads an integer environment variable with a default fallback
func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
