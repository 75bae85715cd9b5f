package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ADIKDL/ImageEditor-backend/internal/config"
	"github.com/ADIKDL/ImageEditor-backend/internal/storage"
)

// Server wires the HTTP endpoints to the imaging pipeline and the upload
// store.
type Server struct {
	cfg   config.Config
	store *storage.Store
	log   zerolog.Logger

	// slots bounds the number of pipelines running at once so CPU-bound
	// decode/adjust/encode work cannot starve the accept loop.
	slots chan struct{}
}

// New creates a Server from an explicit configuration and its
// collaborators.
func New(cfg config.Config, store *storage.Store, log zerolog.Logger) *Server {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Server{
		cfg:   cfg,
		store: store,
		log:   log,
		slots: make(chan struct{}, workers),
	}
}

// Handler builds the route table wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /process", s.handleProcess)
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return s.withCORS(mux)
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Int("worker_slots", cap(s.slots)).Msg("listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// acquire blocks until a pipeline slot is free.
func (s *Server) acquire() {
	s.slots <- struct{}{}
	s.log.Debug().Int("used", len(s.slots)).Int("total", cap(s.slots)).Msg("pipeline slot acquired")
}

func (s *Server) release() {
	<-s.slots
}

// withCORS applies permissive cross-origin headers and answers preflight
// requests.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
