package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	service "github.com/okian/nexera/internal/app"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/scene"
)

// SessionDependencies defines the session lifecycle operations.
type SessionDependencies interface {
	CreateSession(ctx context.Context) (*service.Session, error)
	Session(ctx context.Context, id string) (*service.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionsHandler handles stateful, delayed pipelines under /sessions.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ackResponse struct {
	Status string `json:"status"`
}

type assetStateResponse struct {
	service.AssetState
	Scene *scene.Group `json:"scene,omitempty"`
}

type sessionPoseResponse struct {
	Action avatar.Action `json:"action"`
	T      float64       `json:"t"`
	Pose   avatar.Sample `json:"pose"`
	Rig    scene.Rig     `json:"rig"`
}

// HandleCreate handles POST /sessions requests.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sess, err := h.deps.CreateSession(r.Context())
	if err != nil {
		writeKnownError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt})
}

// HandleSession dispatches /sessions/{id}[/resource[/name]] requests.
func (h *SessionsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session"
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/"), "/")
	if parts[0] == "" || len(parts) > 3 {
		writeKnownError(w, NewKind(op, ErrNotFound))
		return
	}

	id := parts[0]
	if len(parts) == 1 {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		if err := h.deps.DeleteSession(r.Context(), id); err != nil {
			writeKnownError(w, Wrap(op, err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sess, err := h.deps.Session(r.Context(), id)
	if err != nil {
		writeKnownError(w, Wrap(op, err))
		return
	}

	switch resource := parts[1]; {
	case resource == "asset" && len(parts) == 2:
		h.handleAsset(w, r, sess)
	case resource == "command" && len(parts) == 2:
		h.handleCommand(w, r, sess)
	case resource == "examples" && len(parts) == 3:
		h.handleExample(w, r, sess, parts[2])
	case resource == "avatar" && len(parts) == 2:
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, sess.Avatar.Snapshot())
	case resource == "pose" && len(parts) == 2:
		h.handlePose(w, r, sess)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleAsset(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	const op = "api.session_asset"
	switch r.Method {
	case http.MethodGet:
		state := sess.Asset.Snapshot()
		resp := assetStateResponse{AssetState: state}
		if state.Entry != nil {
			g := scene.ForAsset(*state.Entry)
			resp.Scene = &g
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		input, err := readInput(op, r)
		if err != nil {
			writeKnownError(w, err)
			return
		}
		if !sess.Asset.Submit(r.Context(), input) {
			writeKnownError(w, rejection(op, sess.Asset.Closed()))
			return
		}
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleCommand(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	const op = "api.session_command"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	input, err := readInput(op, r)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	if !sess.Avatar.Submit(r.Context(), input) {
		writeKnownError(w, rejection(op, sess.Avatar.Closed()))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

func (h *SessionsHandler) handleExample(w http.ResponseWriter, r *http.Request, sess *service.Session, name string) {
	const op = "api.session_example"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ok, err := sess.Avatar.RunExample(r.Context(), name)
	if err != nil {
		writeKnownError(w, Wrap(op, err))
		return
	}
	if !ok {
		writeKnownError(w, rejection(op, sess.Avatar.Closed()))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

// rejection classifies a refused submission. Closing is final, so a
// controller found closed after the refusal belongs to a session that is gone.
func rejection(op string, closed bool) error {
	if closed {
		return NewKind(op, ErrNotFound)
	}
	return NewKind(op, ErrBusy)
}

func (h *SessionsHandler) handlePose(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	const op = "api.session_pose"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	t, err := queryFloat(r, "t", sess.Avatar.Elapsed())
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	action, pose := sess.Avatar.Pose(t)
	writeJSON(w, http.StatusOK, sessionPoseResponse{
		Action: action,
		T:      t,
		Pose:   pose,
		Rig:    scene.Apply(scene.AvatarRig(), pose),
	})
}
