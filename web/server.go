// ABOUTME: Course site HTTP server: serves route-table pages through the document shell behind a chi router.
// ABOUTME: Also exposes health, Prometheus metrics, static CSS, and the optional live-reload websocket.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/2389-research/coursesite/content"
	"github.com/2389-research/coursesite/route"
	"github.com/2389-research/coursesite/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Server is the course site HTTP server.
type Server struct {
	site         *site.Site
	logger       logrus.FieldLogger
	router       chi.Router
	addr         string
	metrics      *metrics
	hub          *Hub
	highlightCSS []byte
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr   string // listen address (default: "127.0.0.1:3000")
	Site   *site.Site
	Logger logrus.FieldLogger
	// LiveReload mounts the websocket hub at LiveReloadPath.
	LiveReload bool
}

// NewServer creates a Server for an assembled site.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Site == nil {
		return nil, errors.New("site must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:3000"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	css, err := content.HighlightCSS(cfg.Site.Definition.HighlightStyle)
	if err != nil {
		return nil, fmt.Errorf("generating highlight stylesheet: %w", err)
	}

	s := &Server{
		site:         cfg.Site,
		logger:       cfg.Logger,
		addr:         cfg.Addr,
		highlightCSS: css,
	}

	var clients func() float64
	if cfg.LiveReload {
		s.hub = NewHub(cfg.Logger)
		clients = func() float64 { return float64(s.hub.Len()) }
	}
	s.metrics = newMetrics(clients)

	s.router, err = s.buildRouter()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Hub returns the live-reload hub, or nil when live reload is disabled.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server with timeouts that bound slow
// clients, and shuts it down gracefully when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	if s.hub != nil {
		s.hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(webRequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(middleware.StripSlashes)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	staticFS, err := fs.Sub(StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-FS: %w", err)
	}
	r.Get("/static/css/highlight.css", s.handleHighlightCSS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	if s.hub != nil {
		r.Handle(LiveReloadPath, s.hub)
	}

	s.site.Table.Mount(r, s.pageHandler)
	r.NotFound(s.handleNotFound)

	return r, nil
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"routes": len(s.site.Table.Paths()),
	}); err != nil {
		s.logger.WithError(err).WithField("request_id", RequestID(r.Context())).Debug("writing health response")
	}
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := w.Write(s.highlightCSS); err != nil {
		s.logger.WithError(err).WithField("request_id", RequestID(r.Context())).Debug("writing highlight stylesheet")
	}
}

// pageHandler renders one resolved route. The document is buffered so a
// render failure still produces a clean 500.
func (s *Server) pageHandler(m route.Match) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := s.site.RenderMatch(&buf, m); err != nil {
			s.metrics.renderFailures.Inc()
			s.logger.WithError(err).WithFields(logrus.Fields{
				"path":       m.Path,
				"request_id": RequestID(r.Context()),
			}).Error("rendering page")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, r, http.StatusOK, buf.Bytes())
	}
}

// handleNotFound answers every path the route table does not know with the
// not-found document.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.site.RenderNotFound(&buf, r.URL.Path); err != nil {
		s.metrics.renderFailures.Inc()
		s.logger.WithError(err).WithField("request_id", RequestID(r.Context())).Error("rendering not found page")
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeHTML(w, r, http.StatusNotFound, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}
