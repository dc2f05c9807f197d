package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/lobster/internal/auth"
	"github.com/aretw0/lobster/internal/logging"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is reported by /info.
const APIVersion = "1.0.0"

// Engine defines the adventure operations exposed over HTTP.
type Engine interface {
	CreateAdventure(ctx context.Context, labels []*string) (*domain.Node, error)
	Adventure(ctx context.Context) (*domain.Node, error)
	StartUserAdventure(ctx context.Context, userID string) (*domain.Node, error)
	AdvanceUserAdventure(ctx context.Context, userID string, nodeID int) (*domain.Node, error)
	UserResult(ctx context.Context, userID string) (*domain.Node, error)
	ResetUserAdventure(ctx context.Context, userID string) error
}

// Authenticator issues and verifies bearer tokens.
type Authenticator interface {
	Issue(id auth.Identity) (string, error)
	Verify(token string) (auth.Identity, error)
}

// Server holds the HTTP handlers.
type Server struct {
	Engine  Engine
	Auth    Authenticator
	Metrics http.Handler
	Version string
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, authn Authenticator, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Auth: authn, Version: "dev"}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Post("/api/token", s.IssueToken)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/internaladventure", func(r chi.Router) {
			r.Post("/create-adventure", s.CreateAdventure)
			r.Get("/current-adventure", s.CurrentAdventure)
		})
		r.Route("/useradventure", func(r chi.Router) {
			r.Get("/start-adventure", s.StartAdventure)
			r.Get("/next-step", s.NextStep)
			r.Get("/adventure-result", s.AdventureResult)
			r.Delete("/session", s.ResetSession)
		})
	})

	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"app":         "lobster-http",
		"version":     s.Version,
		"api_version": APIVersion,
	})
}

type tokenRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// IssueToken handles POST /api/token.
func (s *Server) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.Auth.Issue(auth.Identity{UserID: body.UserID, UserName: body.UserName})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, auth.BearerPrefix+token)
}

// CreateAdventure handles POST /internaladventure/create-adventure.
func (s *Server) CreateAdventure(w http.ResponseWriter, r *http.Request) {
	var labels []*string
	if err := json.NewDecoder(r.Body).Decode(&labels); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := s.Engine.CreateAdventure(r.Context(), labels); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, true)
}

// CurrentAdventure handles GET /internaladventure/current-adventure.
func (s *Server) CurrentAdventure(w http.ResponseWriter, r *http.Request) {
	root, err := s.Engine.Adventure(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, root)
}

// StartAdventure handles GET /useradventure/start-adventure.
func (s *Server) StartAdventure(w http.ResponseWriter, r *http.Request) {
	step, err := s.Engine.StartUserAdventure(r.Context(), UserID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, step)
}

// NextStep handles GET /useradventure/next-step?nodeId=N.
func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	nodeID, err := strconv.Atoi(r.URL.Query().Get("nodeId"))
	if err != nil || nodeID <= 0 {
		http.Error(w, "nodeId must be a positive integer", http.StatusBadRequest)
		return
	}

	step, err := s.Engine.AdvanceUserAdventure(r.Context(), UserID(r.Context()), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, step)
}

// AdventureResult handles GET /useradventure/adventure-result.
func (s *Server) AdventureResult(w http.ResponseWriter, r *http.Request) {
	path, err := s.Engine.UserResult(r.Context(), UserID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, path)
}

// ResetSession handles DELETE /useradventure/session.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.ResetUserAdventure(r.Context(), UserID(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

type userKey struct{}

// UserID returns the authenticated user id stored in ctx, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(auth.Identity)
	return id.UserID
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.FromHeader(r.Header.Get("Authorization"))
		if !ok {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}
		id, err := s.Auth.Verify(token)
		if err != nil {
			s.Logger.Debug("Token rejected", "request_id", middleware.GetReqID(r.Context()), "err", err)
			http.Error(w, "Invalid bearer token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, id)))
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn(fmt.Sprintf("%s encode error", r.URL.Path), "err", err)
	}
}
