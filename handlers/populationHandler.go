package handlers

import (
	"Pronostico/models"
	"Pronostico/services"

	"github.com/gin-gonic/gin"
)

type PopulationHandler struct {
	service *services.PopulationService
}

func NewPopulationHandler(service *services.PopulationService) *PopulationHandler {
	return &PopulationHandler{service: service}
}

func (h *PopulationHandler) GetPopulation(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	month, okMonth := intQuery(c, "month")
	if !okYear || !okEPS || !okMonth {
		c.JSON(400, gin.H{"error": "Invalid filter parameters"})
		return
	}

	population, err := h.service.List(c, yearID, epsID, month)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, population)
}

// SavePopulation upserts a month's population figures. The projections of
// that month are recomputed in the same transaction.
func (h *PopulationHandler) SavePopulation(c *gin.Context) {
	var population models.Population
	if err := c.ShouldBindJSON(&population); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Save(c, &population); err != nil {
		if isValidationError(err) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, population)
}
