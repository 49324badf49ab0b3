package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REPORTS_STORAGE_ROOT", "")
	t.Setenv("REPORTS_MAX_UPLOAD_MB", "")
	t.Setenv("REPORTS_CURRENCY", "")
	t.Setenv("REPORTS_CONFIG", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageRoot != filepath.FromSlash("var/reports/monthly") {
		t.Fatalf("storage root: got %q", cfg.StorageRoot)
	}
	if cfg.MaxUploadMB != 20 {
		t.Fatalf("max upload: got %d", cfg.MaxUploadMB)
	}
	if cfg.Currency != "GEL" {
		t.Fatalf("currency: got %q", cfg.Currency)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("REPORTS_STORAGE_ROOT", "/srv/reports")
	t.Setenv("REPORTS_MAX_UPLOAD_MB", "5")
	t.Setenv("REPORTS_CURRENCY", "USD")
	t.Setenv("REPORTS_CONFIG", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageRoot != "/srv/reports" || cfg.MaxUploadMB != 5 || cfg.Currency != "USD" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.yaml")
	if err := os.WriteFile(path, []byte("storage_root: /data/reports\nmax_upload_mb: 8\ncurrency: EUR\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("REPORTS_STORAGE_ROOT", "")
	t.Setenv("REPORTS_MAX_UPLOAD_MB", "")
	t.Setenv("REPORTS_CURRENCY", "")
	t.Setenv("REPORTS_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageRoot != "/data/reports" || cfg.MaxUploadMB != 8 || cfg.Currency != "EUR" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_MissingYAMLFile(t *testing.T) {
	t.Setenv("REPORTS_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
