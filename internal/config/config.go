package config

import (
	"os"
	"strings"
)

// Config holds all runtime settings read from the environment.
type Config struct {
	Port           string
	RunLocal       bool
	AllowedOrigins []string
	LogLevel       string

	GeminiAPIKey string
	GeminiModel  string

	OrdersTable      string
	ProductsTable    string
	OrderEventsQueue string
	MetricsNamespace string
}

// Load reads the environment once at startup. Missing values fall back to
// development defaults; GEMINI_API_KEY has no default and is checked by the
// AI client constructor.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		RunLocal:       getEnv("RUN_LOCAL", "false") == "true",
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,https://wkc.vercel.app")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		OrdersTable:      getEnv("ORDERS_TABLE", "orders"),
		ProductsTable:    getEnv("PRODUCTS_TABLE", "products"),
		OrderEventsQueue: getEnv("ORDER_EVENTS_QUEUE_URL", ""),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "WKCOrderFlow"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
