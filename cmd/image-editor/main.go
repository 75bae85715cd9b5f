package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ADIKDL/ImageEditor-backend/internal/config"
	"github.com/ADIKDL/ImageEditor-backend/internal/server"
	"github.com/ADIKDL/ImageEditor-backend/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-editor %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-editor - HTTP backend for image analysis and adjustment")
			fmt.Println()
			fmt.Println("Usage: image-editor [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_EDITOR_ADDR            Listen address (default :5000)")
			fmt.Println("  IMAGE_EDITOR_STORAGE_DIR     Upload retention directory (default uploads)")
			fmt.Println("  IMAGE_EDITOR_STATIC_DIR      Static asset directory (default disabled)")
			fmt.Println("  IMAGE_EDITOR_PREVIEW_WIDTH   Preview max width in pixels (default 300)")
			fmt.Println("  IMAGE_EDITOR_MAX_UPLOAD_MB   Upload size cap in megabytes (default 20)")
			fmt.Println("  IMAGE_EDITOR_WORKERS         Concurrent pipeline limit (default NumCPU)")
			fmt.Println("  IMAGE_EDITOR_CORS_ORIGIN     CORS allowed origin (default *)")
			fmt.Println("  IMAGE_EDITOR_SWEEP_AGE       Stored original retention (default 1h)")
			fmt.Println("  IMAGE_EDITOR_LOG_LEVEL=debug Enable debug logging")
			return
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "image-editor").Logger()
	if os.Getenv("IMAGE_EDITOR_LOG_LEVEL") != "debug" {
		log = log.Level(zerolog.InfoLevel)
	}
	log.Info().Str("version", Version).Str("commit", GitCommit).Msg("starting")

	cfg := config.FromEnv()

	store, err := storage.New(cfg.StorageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodically drop stored originals past their retention window.
	go func() {
		ticker := time.NewTicker(cfg.SweepAge / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(cfg.SweepAge); n > 0 {
					log.Info().Int("removed", n).Msg("swept stored originals")
				}
			}
		}
	}()

	srv := server.New(cfg, store, log)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
