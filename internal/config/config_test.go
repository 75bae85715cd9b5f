package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Addr != ":5000" {
		t.Errorf("Addr: got %q, want :5000", cfg.Addr)
	}
	if cfg.PreviewWidth != 300 {
		t.Errorf("PreviewWidth: got %d, want 300", cfg.PreviewWidth)
	}
	if cfg.MaxUploadBytes != 20<<20 {
		t.Errorf("MaxUploadBytes: got %d, want %d", cfg.MaxUploadBytes, 20<<20)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers: got %d, want >= 1", cfg.Workers)
	}
	if cfg.SweepAge != time.Hour {
		t.Errorf("SweepAge: got %v, want 1h", cfg.SweepAge)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("IMAGE_EDITOR_ADDR", ":9999")
	t.Setenv("IMAGE_EDITOR_STORAGE_DIR", "/tmp/uploads")
	t.Setenv("IMAGE_EDITOR_STATIC_DIR", "public")
	t.Setenv("IMAGE_EDITOR_PREVIEW_WIDTH", "512")
	t.Setenv("IMAGE_EDITOR_MAX_UPLOAD_MB", "8")
	t.Setenv("IMAGE_EDITOR_WORKERS", "3")
	t.Setenv("IMAGE_EDITOR_CORS_ORIGIN", "https://example.com")
	t.Setenv("IMAGE_EDITOR_SWEEP_AGE", "30m")

	cfg := FromEnv()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr: got %q", cfg.Addr)
	}
	if cfg.StorageDir != "/tmp/uploads" {
		t.Errorf("StorageDir: got %q", cfg.StorageDir)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("StaticDir: got %q", cfg.StaticDir)
	}
	if cfg.PreviewWidth != 512 {
		t.Errorf("PreviewWidth: got %d", cfg.PreviewWidth)
	}
	if cfg.MaxUploadBytes != 8<<20 {
		t.Errorf("MaxUploadBytes: got %d", cfg.MaxUploadBytes)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers: got %d", cfg.Workers)
	}
	if cfg.AllowedOrigin != "https://example.com" {
		t.Errorf("AllowedOrigin: got %q", cfg.AllowedOrigin)
	}
	if cfg.SweepAge != 30*time.Minute {
		t.Errorf("SweepAge: got %v", cfg.SweepAge)
	}
}

func TestFromEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("IMAGE_EDITOR_PREVIEW_WIDTH", "wide")
	t.Setenv("IMAGE_EDITOR_WORKERS", "-2")
	t.Setenv("IMAGE_EDITOR_SWEEP_AGE", "soon")

	cfg := FromEnv()
	def := Default()

	if cfg.PreviewWidth != def.PreviewWidth {
		t.Errorf("PreviewWidth: got %d, want default %d", cfg.PreviewWidth, def.PreviewWidth)
	}
	if cfg.Workers != def.Workers {
		t.Errorf("Workers: got %d, want default %d", cfg.Workers, def.Workers)
	}
	if cfg.SweepAge != def.SweepAge {
		t.Errorf("SweepAge: got %v, want default %v", cfg.SweepAge, def.SweepAge)
	}
}
