package api

import (
	_ "embed"
	"net/http"
)

//go:embed static/dashboard.html
var dashboardPage []byte

// dashboardHandler serves a page that polls /stats and /healthz and charts
// pipeline activity.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardPage)
}
