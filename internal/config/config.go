package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения.
// Радиусы рассылки и параметры напоминаний заданы здесь в одном месте
// и разделяются сервисом рассылки и планировщиком напоминаний.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Push Gateway Config
	ExpoPushURL   string        `env:"EXPO_PUSH_URL" envDefault:"https://exp.host/--/api/v2/push/send"`
	PushTimeout   time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`
	PushChunkSize int           `env:"PUSH_CHUNK_SIZE" envDefault:"100"`

	// Fan-out Config
	NotifyRadiusMeters float64 `env:"NOTIFY_RADIUS_METERS" envDefault:"5000"`

	// Reminder Config
	ReminderInterval         time.Duration `env:"REMINDER_INTERVAL" envDefault:"1m"`
	ReminderThresholdMinutes int           `env:"REMINDER_THRESHOLD_MINUTES" envDefault:"15"`
	ReminderMaxPerSos        int           `env:"REMINDER_MAX_PER_SOS" envDefault:"3"`
	ReminderRadiusMeters     float64       `env:"REMINDER_RADIUS_METERS" envDefault:"5000"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		HTTPPort:                 getEnv("HTTP_PORT", "8080"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		RedisAddr:                getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  getEnvAsInt("REDIS_DB", 0),
		ExpoPushURL:              getEnv("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		PushTimeout:              getEnvAsDuration("PUSH_TIMEOUT", 10*time.Second),
		PushChunkSize:            getEnvAsInt("PUSH_CHUNK_SIZE", 100),
		NotifyRadiusMeters:       getEnvAsFloat("NOTIFY_RADIUS_METERS", 5000),
		ReminderInterval:         getEnvAsDuration("REMINDER_INTERVAL", time.Minute),
		ReminderThresholdMinutes: getEnvAsInt("REMINDER_THRESHOLD_MINUTES", 15),
		ReminderMaxPerSos:        getEnvAsInt("REMINDER_MAX_PER_SOS", 3),
		ReminderRadiusMeters:     getEnvAsFloat("REMINDER_RADIUS_METERS", 5000),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
