// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/nexera/internal/adapters/repository"
	service "github.com/okian/nexera/internal/app"
	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Stateless classification.
	ClassifyAsset(ctx context.Context, input string) asset.Entry
	ClassifyCommand(ctx context.Context, input string) (avatar.Action, string)

	// Session lifecycle.
	CreateSession(ctx context.Context) (*service.Session, error)
	Session(ctx context.Context, id string) (*service.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// Default and maximum track sizes for GET /pose/track.
const (
	defaultTrackFrames   = 60
	defaultMaxTrackFrame = 600
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxTrackFrames caps the n parameter of GET /pose/track.
func WithMaxTrackFrames(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.poseHandler.maxFrames = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	classifyHandler  *ClassifyHandler
	poseHandler      *PoseHandler
	catalogHandler   *CatalogHandler
	sessionsHandler  *SessionsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	pose := NewPoseHandler(defaultMaxTrackFrame)
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider, pose),
		classifyHandler:  NewClassifyHandler(deps),
		poseHandler:      pose,
		catalogHandler:   NewCatalogHandler(),
		sessionsHandler:  NewSessionsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/classify/asset", MetricsMiddleware(s.classifyHandler.HandleAsset, "classify_asset"))
	mux.HandleFunc("/classify/command", MetricsMiddleware(s.classifyHandler.HandleCommand, "classify_command"))
	mux.HandleFunc("/pose", MetricsMiddleware(s.poseHandler.HandlePose, "pose"))
	mux.HandleFunc("/pose/track", MetricsMiddleware(s.poseHandler.HandleTrack, "pose_track"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleCatalog, "catalog"))
	mux.HandleFunc("/examples", MetricsMiddleware(s.catalogHandler.HandleExamples, "examples"))
	mux.HandleFunc("/viewer", MetricsMiddleware(s.catalogHandler.HandleViewer, "viewer"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSession, "session"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before writing the header so an encoding failure
// still yields a 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Get().Error(context.Background(), "encode response", logger.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"code":"internal_error","message":"failed to encode response"}`+"\n")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeKnownError maps sentinel kinds from this and lower layers to a status.
func writeKnownError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrUnknownExample):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBusy):
		writeError(w, http.StatusConflict, "busy", err)
	case errors.Is(err, ErrCapacity),
		errors.Is(err, repository.ErrCapacity):
		writeError(w, http.StatusServiceUnavailable, "capacity", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
