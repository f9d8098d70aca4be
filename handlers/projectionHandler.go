package handlers

import (
	"Pronostico/forecast"
	"Pronostico/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProjectionHandler struct {
	service *services.ProjectionService
}

func NewProjectionHandler(service *services.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{service: service}
}

type recalculateRequest struct {
	EPSID  uint `json:"eps_id"`
	YearID uint `json:"year_id"`
	Month  int  `json:"month"`
}

// Recalculate recomputes the projections of one EPS and month from the
// current population and contracted services.
func (h *ProjectionHandler) Recalculate(c *gin.Context) {
	var request recalculateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if request.EPSID == 0 || request.YearID == 0 || request.Month < 1 || request.Month > 12 {
		c.JSON(400, gin.H{"error": "eps_id, year_id and a month between 1 and 12 are required"})
		return
	}

	if err := h.service.Recalculate(c, request.EPSID, request.YearID, request.Month); err != nil {
		c.JSON(projectionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Projection recalculated"})
}

type redistributeRequest struct {
	YearID uint `json:"year_id"`
	EPSID  uint `json:"eps_id"`
	Month  int  `json:"month"`
}

// Redistribute moves the pending appointments of closed months into the
// rest of the year. eps_id of 0 covers every active EPS; month of 0 covers
// every month.
func (h *ProjectionHandler) Redistribute(c *gin.Context) {
	var request redistributeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if request.YearID == 0 || request.Month < 0 || request.Month > 12 {
		c.JSON(400, gin.H{"error": "year_id and a month between 0 and 12 are required"})
		return
	}

	if err := h.service.Redistribute(c, request.YearID, request.EPSID, request.Month); err != nil {
		c.JSON(projectionErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Pending appointments redistributed"})
}

func projectionErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRecalculationInProgress):
		return 409
	case errors.Is(err, forecast.ErrNoPopulationData):
		return 422
	default:
		return 500
	}
}
