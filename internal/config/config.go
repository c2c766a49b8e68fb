package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds dashboard settings, populated from environment variables.
type Config struct {
	CSVPath     string
	GeoJSONPath string
	HTTPAddr    string
}

// Load reads configuration from the environment, applying defaults
// where unset. A .env file in the working directory is honored when
// present; its absence is not an error. CLI flags override these
// values.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		CSVPath:     envOrDefault("HEATMAP_CSV", "UCD_DeltaT.csv"),
		GeoJSONPath: envOrDefault("HEATMAP_GEOJSON", "UCD_DeltaT.geojson"),
		HTTPAddr:    envOrDefault("HEATMAP_ADDR", ":8080"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
