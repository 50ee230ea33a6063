package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig
	Models ModelsConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Auth   AuthConfig
	CORS   CORSConfig
	Gemini GeminiConfig
}

type ServerConfig struct {
	Port int
}

// ModelsConfig locates the serialized model artifacts loaded at startup.
type ModelsConfig struct {
	Dir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// AuthConfig holds the single operator credential pair. When Enabled is
// false the API is openly callable.
type AuthConfig struct {
	Enabled  bool
	Username string
	Password string
}

type CORSConfig struct {
	AllowedOrigins string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	TimeoutSec int
	MaxRetries int
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtExpiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	geminiTimeout, err := getIntEnv("GEMINI_TIMEOUT_SEC", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TIMEOUT_SEC: %w", err)
	}
	geminiRetries, err := getIntEnv("GEMINI_MAX_RETRIES", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_MAX_RETRIES: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Models: ModelsConfig{
			Dir: getEnv("MODELS_DIR", "data/models"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "laplens_dev_secret"),
			ExpiryHours: jwtExpiry,
		},
		Auth: AuthConfig{
			Enabled:  getBoolEnv("AUTH_ENABLED", false),
			Username: getEnv("AUTH_USERNAME", "operator"),
			Password: getEnv("AUTH_PASSWORD", "laplens_dev_password"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			TimeoutSec: geminiTimeout,
			MaxRetries: geminiRetries,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
