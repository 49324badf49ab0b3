package application

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines reporting configuration.
type Config struct {
	StorageRoot string `yaml:"storage_root"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
	Currency    string `yaml:"currency"`
}

// LoadConfig loads config from yaml or env.
func LoadConfig() (Config, error) {
	cfg := Config{
		StorageRoot: getenvDefault("REPORTS_STORAGE_ROOT", filepath.FromSlash("var/reports/monthly")),
		MaxUploadMB: getenvIntDefault("REPORTS_MAX_UPLOAD_MB", 20),
		Currency:    getenvDefault("REPORTS_CURRENCY", "GEL"),
	}

	if path := os.Getenv("REPORTS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.StorageRoot == "" {
		return cfg, errors.New("reports: storage root required")
	}
	if cfg.MaxUploadMB <= 0 {
		return cfg, errors.New("reports: max upload size must be positive")
	}
	if cfg.Currency == "" {
		cfg.Currency = "GEL"
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
