package api

import (
	"net/http"

	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/scene"
)

// CatalogHandler serves the fixed tables a renderer needs up front.
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

type catalogItem struct {
	asset.Entry
	Scene scene.Group `json:"scene"`
}

type exampleItem struct {
	avatar.Example
	Explanation string `json:"explanation"`
}

type viewerResponse struct {
	Viewer scene.Viewer `json:"viewer"`
	Room   *scene.Group `json:"room,omitempty"`
	Rig    *scene.Rig   `json:"rig,omitempty"`
}

// HandleCatalog handles GET /catalog requests.
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entries := asset.Catalog()
	out := make([]catalogItem, len(entries))
	for i, e := range entries {
		out[i] = catalogItem{Entry: e, Scene: scene.ForAsset(e)}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleExamples handles GET /examples requests.
func (h *CatalogHandler) HandleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	examples := avatar.QuickExamples()
	out := make([]exampleItem, len(examples))
	for i, ex := range examples {
		out[i] = exampleItem{Example: ex, Explanation: avatar.Explain(ex.Action)}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleViewer handles GET /viewer?page=asset|avatar requests.
func (h *CatalogHandler) HandleViewer(w http.ResponseWriter, r *http.Request) {
	const op = "api.viewer"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	switch page := r.URL.Query().Get("page"); page {
	case "", "asset":
		writeJSON(w, http.StatusOK, viewerResponse{Viewer: scene.NewViewer(true)})
	case "avatar":
		room := scene.TrainingRoom()
		rig := scene.AvatarRig()
		writeJSON(w, http.StatusOK, viewerResponse{Viewer: scene.NewViewer(false), Room: &room, Rig: &rig})
	default:
		writeKnownError(w, NewKind(op, ErrBadRequest))
	}
}
