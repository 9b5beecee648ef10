package api

import (
	"context"
	"net/http"

	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/scene"
)

// ClassifyDependencies defines the stateless classifiers.
type ClassifyDependencies interface {
	ClassifyAsset(ctx context.Context, input string) asset.Entry
	ClassifyCommand(ctx context.Context, input string) (avatar.Action, string)
}

// ClassifyHandler handles one-shot classification requests.
type ClassifyHandler struct {
	deps ClassifyDependencies
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(deps ClassifyDependencies) *ClassifyHandler {
	return &ClassifyHandler{deps: deps}
}

type assetResponse struct {
	Entry asset.Entry `json:"entry"`
	Scene scene.Group `json:"scene"`
	Steps []string    `json:"steps"`
}

type commandResponse struct {
	Action      avatar.Action `json:"action"`
	Explanation string        `json:"explanation"`
	Steps       []string      `json:"steps"`
}

// HandleAsset handles POST /classify/asset requests.
func (h *ClassifyHandler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_asset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	input, err := readInput(op, r)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	e := h.deps.ClassifyAsset(r.Context(), input)
	writeJSON(w, http.StatusOK, assetResponse{Entry: e, Scene: scene.ForAsset(e), Steps: asset.PipelineSteps()})
}

// HandleCommand handles POST /classify/command requests.
func (h *ClassifyHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_command"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	input, err := readInput(op, r)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	a, explanation := h.deps.ClassifyCommand(r.Context(), input)
	writeJSON(w, http.StatusOK, commandResponse{Action: a, Explanation: explanation, Steps: avatar.PipelineSteps()})
}

// readInput decodes an input body and rejects blank text.
func readInput(op string, r *http.Request) (string, error) {
	var req inputRequest
	if err := decodeValidated(r, inputSchema, &req); err != nil {
		return "", WrapKind(op, ErrBadRequest, err)
	}
	if asset.IsBlank(req.Input) {
		return "", WrapKind(op, ErrBadRequest, errBlankInput)
	}
	return req.Input, nil
}
