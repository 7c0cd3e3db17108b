// Package preview serves a compiled presentation over HTTP for local
// review. The project is compiled to HTML once at startup and again on
// every POST /reload, so edits to project.json show up without restarting.
package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/observability"
	"github.com/matzehuels/slidelinker/pkg/pipeline"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// Server holds the latest compiled deck of one project file.
type Server struct {
	runner      *pipeline.Runner
	projectPath string
	logger      *log.Logger

	mu       sync.RWMutex
	page     []byte
	raw      []byte
	warnings []project.Warning
	loadedAt time.Time
}

// New creates a server for the project at projectPath. Call Reload before
// serving to compile the first version.
func New(runner *pipeline.Runner, projectPath string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, projectPath: projectPath, logger: logger}
}

// Reload reads the project file and recompiles it. On failure the
// previously compiled deck stays in place.
func (s *Server) Reload(ctx context.Context) error {
	p, err := project.Load(s.projectPath)
	if err != nil {
		return err
	}
	raw, err := project.Marshal(p)
	if err != nil {
		return err
	}
	res, err := s.runner.Execute(ctx, p, pipeline.Options{
		Format:  render.FormatHTML,
		BaseDir: filepath.Dir(s.projectPath),
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.page, s.raw, s.warnings, s.loadedAt = res.Artifact, raw, res.Warnings, time.Now()
	s.mu.Unlock()

	s.logger.Info("preview compiled", "slides", len(p.Slides), "warnings", len(res.Warnings), "bytes", len(res.Artifact))
	return nil
}

// Handler returns the HTTP routes:
//
//	GET  /              compiled HTML
//	POST /reload        recompile from disk
//	GET  /project.json  the project as last loaded
//	GET  /healthz       liveness probe
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Post("/reload", s.handleReload)
	r.Get("/project.json", s.handleProject)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("preview listening", "url", "http://"+addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()
	if page == nil {
		http.Error(w, "presentation not compiled yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	raw := s.raw
	s.mu.RUnlock()
	if raw == nil {
		http.Error(w, "project not loaded yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

type reloadResponse struct {
	OK       bool              `json:"ok"`
	Error    string            `json:"error,omitempty"`
	Code     errors.Code       `json:"code,omitempty"`
	Warnings []project.Warning `json:"warnings,omitempty"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusUnprocessableEntity, reloadResponse{
			Error: errors.UserMessage(err),
			Code:  errors.GetCode(err),
		})
		return
	}
	s.mu.RLock()
	warnings := s.warnings
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, reloadResponse{OK: true, Warnings: warnings})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// observe reports requests to the registered HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
