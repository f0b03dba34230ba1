package config

import "os"

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Ledger
	BankName string
	DataFile string

	// Observability
	LogLevel       string
	TracingEnabled bool
	OTLPEndpoint   string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		BankName: getEnv("BANK_NAME", "Go National Bank"),
		DataFile: getEnv("DATA_FILE", "bank_data.json"),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TracingEnabled: getEnv("TRACING_ENABLED", "false") == "true",
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
