// Package http exposes a query engine as a JSON API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/michal-shasha/bayesnet/internal/presentation/graph"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/metrics"
	"github.com/michal-shasha/bayesnet/pkg/ports"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxBodySize bounds request bodies; queries are a few hundred bytes at most.
const maxBodySize = 64 << 10

type ctxKey struct{}

// Server serves the query API for one engine.
type Server struct {
	Engine  ports.QueryEngine
	Metrics *metrics.Registry
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics instruments every route and mounts GET /metrics.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Server) {
		s.Metrics = reg
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.QueryEngine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	if s.Metrics != nil {
		r.Use(s.instrument)
	}

	r.Post("/query", s.Query)
	r.Post("/independence", s.Independence)
	r.Get("/network", s.GetNetwork)
	r.Get("/network/mermaid", s.GetMermaid)
	r.Get("/healthz", s.GetHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID reuses the caller's X-Request-ID when it is a UUID, otherwise assigns one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestIDFrom returns the request ID stored by the handler, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.Metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
	})
}

// Query handles the POST /query request.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var body ProbabilityRequest
	if !s.decode(w, r, &body) {
		return
	}
	q, err := body.toDomain()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.Engine.Query(r.Context(), q)
	if err == nil {
		err = res.Check()
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, ProbabilityResponse{
		RequestID:       RequestIDFrom(r.Context()),
		Query:           q.String(),
		Probability:     res.Probability,
		Additions:       res.Additions,
		Multiplications: res.Multiplications,
	})
}

// Independence handles the POST /independence request.
func (s *Server) Independence(w http.ResponseWriter, r *http.Request) {
	var body IndependenceRequest
	if !s.decode(w, r, &body) {
		return
	}
	q, err := body.toDomain()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	independent, err := s.Engine.Independent(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	answer := "no"
	if independent {
		answer = "yes"
	}
	s.respond(w, r, http.StatusOK, IndependenceResponse{
		RequestID:   RequestIDFrom(r.Context()),
		Query:       q.String(),
		Independent: independent,
		Answer:      answer,
	})
}

// GetNetwork handles the GET /network request.
func (s *Server) GetNetwork(w http.ResponseWriter, r *http.Request) {
	net := s.Engine.Network()
	s.respond(w, r, http.StatusOK, NetworkResponse{
		Name:      net.Name(),
		Variables: net.Definitions(),
	})
}

// GetMermaid handles the GET /network/mermaid request.
// An optional "query" parameter in the probability syntax adds overlay styles.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if text := r.URL.Query().Get("query"); text != "" {
		q, err := query.ParseProbability(text)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		overlay = graph.OverlayFor(q)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.Engine.Network(), overlay)))
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"network": s.Engine.Network().Name(),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
		s.respond(w, r, http.StatusBadRequest, ErrorResponse{
			RequestID: RequestIDFrom(r.Context()),
			Error:     "invalid request body: " + err.Error(),
		})
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
	} else {
		s.Logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	s.respond(w, r, status, ErrorResponse{
		RequestID: RequestIDFrom(r.Context()),
		Error:     err.Error(),
	})
}

// respond encodes v before writing the status, so an encoding failure becomes a 500
// with an error body instead of a success status with no body.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{
			RequestID: RequestIDFrom(r.Context()),
			Error:     "failed to encode response",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidElimination), errors.Is(err, query.ErrSyntax),
		errors.Is(err, domain.ErrUndefinedProbability):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
