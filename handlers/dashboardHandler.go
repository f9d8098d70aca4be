package handlers

import (
	"Pronostico/middlewares"
	"Pronostico/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard assembles the stats, monthly compliance series, specialty
// distribution and per-EPS compliance in one response.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	yearID, ok := uintQuery(c, "year_id")
	if !ok || yearID == 0 {
		c.JSON(400, gin.H{"error": "year_id is required"})
		return
	}

	stats, err := h.service.Stats(c, yearID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load dashboard stats", 500, err)
		return
	}
	monthly, err := h.service.MonthlySeries(c, yearID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load monthly series", 500, err)
		return
	}
	specialties, err := h.service.SpecialtyDistribution(c, yearID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load specialty distribution", 500, err)
		return
	}
	eps, err := h.service.EPSCompliance(c, yearID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load EPS compliance", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{
		"stats":       stats,
		"monthly":     monthly,
		"specialties": specialties,
		"eps":         eps,
	}, 200)
}
