package http

import (
	"net/http"

	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
)

// DashboardHandler serves the order-count aggregation: orders grouped by
// creation month, counted per status for the selected month (or all).
type DashboardHandler struct {
	dashboard *panel.Dashboard
}

func NewDashboardHandler(dashboard *panel.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type DashboardState struct {
	Months []string                   `json:"months"`
	Month  string                     `json:"month"`
	Counts map[domain.OrderStatus]int `json:"counts"`
}

func (h *DashboardHandler) Counts(w http.ResponseWriter, r *http.Request) {
	orders, err := h.dashboard.Load(r.Context())
	if err != nil {
		respondOperationError(w, err)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = panel.MonthAll
	}
	respondJSON(w, http.StatusOK, DashboardState{
		Months: panel.Months(orders),
		Month:  month,
		Counts: panel.CountByStatus(orders, month),
	})
}
