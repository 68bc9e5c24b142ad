// Package http exposes a workspace to browser front ends: pointer events go
// in as JSON, reports and renderings come out.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the workspace surface the server drives.
type Engine interface {
	Apply(ctx context.Context, fields map[string]any) (cli.Report, error)
	Evaluate(ctx context.Context, name string) (any, error)
	Run(ctx context.Context) ([]any, error)
	Boxes() []layout.Box
	Outline() string
	Graph() string
	Subscribe(ctx context.Context) <-chan cli.Report
}

var _ Engine = (*cli.Engine)(nil)

// Server serves one Engine.
type Server struct {
	engine   Engine
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithGatherer exposes the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Post("/events", s.PostEvent)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/outline", s.GetOutline)
	r.Get("/outline.md", s.GetOutlineMarkdown)
	r.Get("/graph", s.GetGraph)
	r.Post("/run", s.Run)
	r.Post("/blocks/{name}/evaluate", s.Evaluate)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string      `json:"error"`
	Report *cli.Report `json:"report,omitempty"`
}

// PostEvent handles POST /events. The body is one event object, the same
// shape replay scripts use.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), nil)
		return
	}
	// JSON numbers arrive as float64; node references must be ints.
	for _, key := range []string{"target", "over"} {
		if f, ok := fields[key].(float64); ok {
			fields[key] = int(f)
		}
	}

	rep, err := s.engine.Apply(r.Context(), fields)
	if err != nil {
		if rep.Event == "" {
			s.fail(w, http.StatusBadRequest, err, nil)
			return
		}
		s.fail(w, http.StatusUnprocessableEntity, err, &rep)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// SubscribeEvents handles GET /events by streaming reports as server-sent events.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	reports := s.engine.Subscribe(r.Context())
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case rep, ok := <-reports:
			if !ok {
				return
			}
			data, err := json.Marshal(rep)
			if err != nil {
				s.logger.Error("failed to encode report", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", rep.Event, data)
			flusher.Flush()
		}
	}
}

// GetOutline handles GET /outline.
func (s *Server) GetOutline(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Boxes())
}

// GetOutlineMarkdown handles GET /outline.md.
func (s *Server) GetOutlineMarkdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, s.engine.Outline())
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.engine.Graph())
}

// Run handles POST /run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	results, err := s.engine.Run(r.Context())
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Evaluate handles POST /blocks/{name}/evaluate.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	result, err := s.engine.Evaluate(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrNodeNotFound) {
			status = http.StatusNotFound
		}
		s.fail(w, status, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Server) fail(w http.ResponseWriter, status int, err error, rep *cli.Report) {
	s.logger.Warn("request failed", "status", status, "err", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Report: rep})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		// NaN results from invalid number literals cannot be encoded.
		s.logger.Error("response encode failed", "err", err)
		http.Error(w, "response encode failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
