// Package config holds the process-wide configuration for the image
// editor backend. A Config is constructed once at startup and passed into
// the server bootstrap; nothing in this package is ambient global state.
package config

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config carries every tunable the server needs.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// StorageDir is where uploaded originals are retained between the
	// upload and process/download steps.
	StorageDir string

	// StaticDir, when non-empty, is served at the root path.
	StaticDir string

	// PreviewWidth caps the width of generated previews.
	PreviewWidth int

	// MaxUploadBytes caps the accepted multipart body size.
	MaxUploadBytes int64

	// Workers bounds the number of concurrently running pipelines.
	Workers int

	// AllowedOrigin is the CORS Access-Control-Allow-Origin value.
	AllowedOrigin string

	// SweepAge is how long stored originals are kept before removal.
	SweepAge time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:           ":5000",
		StorageDir:     "uploads",
		StaticDir:      "",
		PreviewWidth:   300,
		MaxUploadBytes: 20 << 20,
		Workers:        runtime.NumCPU(),
		AllowedOrigin:  "*",
		SweepAge:       time.Hour,
	}
}

// FromEnv builds a Config from IMAGE_EDITOR_* environment variables,
// falling back to defaults for unset or malformed values.
//
// Recognized variables:
//
//	IMAGE_EDITOR_ADDR            listen address
//	IMAGE_EDITOR_STORAGE_DIR     upload retention directory
//	IMAGE_EDITOR_STATIC_DIR      static asset directory
//	IMAGE_EDITOR_PREVIEW_WIDTH   preview max width in pixels
//	IMAGE_EDITOR_MAX_UPLOAD_MB   upload size cap in megabytes
//	IMAGE_EDITOR_WORKERS         concurrent pipeline limit
//	IMAGE_EDITOR_CORS_ORIGIN     CORS allowed origin
//	IMAGE_EDITOR_SWEEP_AGE       retention duration, e.g. "30m"
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("IMAGE_EDITOR_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("IMAGE_EDITOR_STORAGE_DIR"); v != "" {
		cfg.StorageDir = v
	}
	if v := os.Getenv("IMAGE_EDITOR_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if n, ok := envInt("IMAGE_EDITOR_PREVIEW_WIDTH"); ok && n > 0 {
		cfg.PreviewWidth = n
	}
	if n, ok := envInt("IMAGE_EDITOR_MAX_UPLOAD_MB"); ok && n > 0 {
		cfg.MaxUploadBytes = int64(n) << 20
	}
	if n, ok := envInt("IMAGE_EDITOR_WORKERS"); ok && n > 0 {
		cfg.Workers = n
	}
	if v := os.Getenv("IMAGE_EDITOR_CORS_ORIGIN"); v != "" {
		cfg.AllowedOrigin = v
	}
	if v := os.Getenv("IMAGE_EDITOR_SWEEP_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SweepAge = d
		}
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
