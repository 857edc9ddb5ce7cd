package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultJWTSecret       = "your-secret-key-change-in-production"
	defaultSeedPassword    = "Ses@mo123"
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	CORS  CORSConfig
	Seed  SeedConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	BcryptCost  int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// JWTConfig: Issuer is reused as the audience of every token.
type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SeedConfig holds the passwords of the accounts created by `bookstore seed`.
type SeedConfig struct {
	AdminPassword    string
	CustomerPassword string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Store API"),
			Environment: getEnv("APP_ENV", EnvironmentDevelopment),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BcryptCost:  getEnvInt("BCRYPT_COST", 12),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer: getEnv("JWT_ISSUER", "bookstore-api"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Seed: SeedConfig{
			AdminPassword:    getEnv("SEED_ADMIN_PASSWORD", defaultSeedPassword),
			CustomerPassword: getEnv("SEED_CUSTOMER_PASSWORD", defaultSeedPassword),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.JWT.Issuer == "" {
		return fmt.Errorf("JWT_ISSUER must not be empty")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes for HS256")
	}

	if c.App.Environment == EnvironmentProduction {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Seed.AdminPassword == defaultSeedPassword || c.Seed.CustomerPassword == defaultSeedPassword {
			return fmt.Errorf("SEED_ADMIN_PASSWORD and SEED_CUSTOMER_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvironmentProduction
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
