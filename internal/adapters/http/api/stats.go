package api

import (
	"net/http"

	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
)

// StatsProvider reports service-level statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves service statistics merged with the static limits of
// the HTTP surface.
type StatsHandler struct {
	provider StatsProvider
	pose     *PoseHandler
}

// NewStatsHandler creates a stats handler. pose may be nil.
func NewStatsHandler(provider StatsProvider, pose *PoseHandler) *StatsHandler {
	return &StatsHandler{provider: provider, pose: pose}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats := make(map[string]interface{})
	if h.provider != nil {
		for k, v := range h.provider.GetStats() {
			stats[k] = v
		}
	}
	stats["catalogEntries"] = len(asset.Catalog())
	stats["quickExamples"] = len(avatar.QuickExamples())
	if h.pose != nil {
		stats["maxTrackFrames"] = h.pose.maxFrames
	}
	writeJSON(w, http.StatusOK, stats)
}
