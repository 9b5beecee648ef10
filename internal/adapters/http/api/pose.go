package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/pkg/metrics"
)

// PoseHandler evaluates the procedural pose function.
type PoseHandler struct {
	maxFrames int
}

// NewPoseHandler creates a pose handler that caps tracks at maxFrames.
func NewPoseHandler(maxFrames int) *PoseHandler {
	return &PoseHandler{maxFrames: maxFrames}
}

type poseResponse struct {
	Action avatar.Action `json:"action"`
	T      float64       `json:"t"`
	Pose   avatar.Sample `json:"pose"`
}

type trackResponse struct {
	Action avatar.Action  `json:"action"`
	Frames []avatar.Frame `json:"frames"`
}

// HandlePose handles GET /pose?action=&t= requests.
func (h *PoseHandler) HandlePose(w http.ResponseWriter, r *http.Request) {
	const op = "api.pose"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	action, err := queryAction(r)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	t, err := queryFloat(r, "t", 0)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	metrics.RecordPoseEvaluation(action.String())
	writeJSON(w, http.StatusOK, poseResponse{Action: action, T: t, Pose: avatar.Pose(action, t)})
}

// HandleTrack handles GET /pose/track?action=&from=&step=&n= requests.
func (h *PoseHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	const op = "api.pose_track"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	action, err := queryAction(r)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	from, err := queryFloat(r, "from", 0)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	step, err := queryFloat(r, "step", 1.0/60)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	n, err := queryInt(r, "n", defaultTrackFrames)
	if err != nil {
		writeKnownError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if n < 0 || n > h.maxFrames {
		writeKnownError(w, WrapKind(op, ErrBadRequest, fmt.Errorf("n must be between 0 and %d", h.maxFrames)))
		return
	}
	if n > 0 && math.IsInf(from+float64(n-1)*step, 0) {
		writeKnownError(w, WrapKind(op, ErrBadRequest, errors.New("track times overflow")))
		return
	}
	metrics.RecordPoseEvaluation(action.String())
	writeJSON(w, http.StatusOK, trackResponse{Action: action, Frames: avatar.Track(action, from, step, n)})
}

// queryAction parses ?action=, defaulting to idle.
func queryAction(r *http.Request) (avatar.Action, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("action"))
	if raw == "" {
		return avatar.ActionIdle, nil
	}
	return avatar.ParseAction(raw)
}
