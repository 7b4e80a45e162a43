package handlers

import (
	"net/http"

	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/transport/http/dto"
	"github.com/openshelf/branch-events/internal/transport/http/response"
)

type HealthHandler struct {
	svc *events.Service
}

func NewHealthHandler(svc *events.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Healthz reports readiness plus snapshot stats. A service that has
// never completed a refresh reports degraded but still answers.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Stats()

	status := "ok"
	if stats.Events == 0 {
		status = "degraded"
	}

	response.Data(w, http.StatusOK, dto.HealthResp{
		Status:      status,
		Events:      stats.Events,
		Branches:    stats.Branches,
		Truncated:   stats.Truncated,
		RefreshedAt: stats.RefreshedAt,
	})
}
