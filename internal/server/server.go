package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/clearuse/clearuse/internal/model"
	"github.com/clearuse/clearuse/internal/pipeline"
)

// Checker runs a full check for one uploaded file.
type Checker interface {
	CheckFile(ctx context.Context, path string, usage model.UsageContext) (*model.Report, error)
}

// Server exposes the checker over HTTP.
type Server struct {
	cfg      *model.Config
	log      zerolog.Logger
	checker  Checker
	validate *validator.Validate
}

// New creates a server around an existing pipeline.
func New(cfg *model.Config, log zerolog.Logger, checker Checker) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		checker:  checker,
		validate: validator.New(),
	}
}

// NewFromConfig builds the pipeline and server from configuration.
func NewFromConfig(cfg *model.Config) *Server {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "clearuse").Logger()
	return New(cfg, log, pipeline.NewPipeline(cfg))
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		s.recoverer,
		s.requestID,
		s.logging,
	)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Get("/sources", s.handleSources)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("server.start")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("server.shutdown")
		return srv.Shutdown(shutdownCtx)
	}
}
