package config

import "os"

// Backend endpoint paths
const (
	PathSummarize   = "/summarize"
	PathHealthScore = "/generalized-health-score"
	PathTranslate   = "/translate"
	PathTripAnalyze = "/analyze-travel-health"
	PathTripScore   = "/travel-health-score"
)

// BackendConfig holds configuration for the AI analysis backend
type BackendConfig struct {
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultBackendConfig returns the default backend configuration
func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		BaseURL:   getEnvOrDefault("HEALTH_API_URL", "http://localhost:5000"),
		TimeoutMS: 30000, // 30 second default timeout on every external call
	}
}

// Endpoint returns the full URL for a backend path
func (c *BackendConfig) Endpoint(path string) string {
	return c.BaseURL + path
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
