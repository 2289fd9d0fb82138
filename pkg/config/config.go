package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	Environment    string
	BackendBaseURL string
	LocalStorePath string
	PaymentMethods []string
	RequestTimeout int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./muaban.db"),
		PaymentMethods: getEnvAsList("PAYMENT_METHODS", "card,bank-transfer,cash-on-delivery"),
		RequestTimeout: getEnvAsInt64("REQUEST_TIMEOUT_SECONDS", 15),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
