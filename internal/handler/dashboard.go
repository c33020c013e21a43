package handler

import (
	"net/http"

	"github.com/khidma-app/khidma-admin/internal/domain"
)

type dashboardResponse struct {
	PendingProviders  int `json:"pending_providers"`
	ApprovedProviders int `json:"approved_providers"`
	RejectedProviders int `json:"rejected_providers"`
	TotalProviders    int `json:"total_providers"`
	TotalUsers        int `json:"total_users"`
	TotalCategories   int `json:"total_categories"`
	TotalGovernorates int `json:"total_governorates"`
}

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(stats))
}

func toDashboardResponse(s domain.DashboardStats) dashboardResponse {
	return dashboardResponse{
		PendingProviders:  s.PendingProviders,
		ApprovedProviders: s.ApprovedProviders,
		RejectedProviders: s.RejectedProviders,
		TotalProviders:    s.TotalProviders,
		TotalUsers:        s.TotalUsers,
		TotalCategories:   s.TotalCategories,
		TotalGovernorates: s.TotalGovernorates,
	}
}
