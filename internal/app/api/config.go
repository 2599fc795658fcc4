package api

import (
	"fmt"
	"os"
	"strings"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                string
	PostgresDSN         string
	CustomersServiceURL string
	CatalogServiceURL   string
	StoresServiceURL    string
	TemporalAddress     string
	TemporalNamespace   string
	TemporalDisabled    bool
	SeedSampleData      bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		CustomersServiceURL: envDefault("CUSTOMERS_SERVICE_URL", "http://localhost:8081/api/v1"),
		CatalogServiceURL:   envDefault("CATALOG_SERVICE_URL", "http://localhost:8082/api/v1"),
		StoresServiceURL:    envDefault("STORES_SERVICE_URL", "http://localhost:8083/api/v1"),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedSampleData:      isTruthy(os.Getenv("SEED_SAMPLE_DATA")),
	}
	for name, value := range map[string]string{
		"CUSTOMERS_SERVICE_URL": cfg.CustomersServiceURL,
		"CATALOG_SERVICE_URL":   cfg.CatalogServiceURL,
		"STORES_SERVICE_URL":    cfg.StoresServiceURL,
	} {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return Config{}, fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, value)
		}
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
