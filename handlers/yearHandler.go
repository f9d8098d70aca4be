package handlers

import (
	"Pronostico/forecast"
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/services"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type YearHandler struct {
	service *services.YearService
}

func NewYearHandler(service *services.YearService) *YearHandler {
	return &YearHandler{service: service}
}

func (h *YearHandler) GetAllYears(c *gin.Context) {
	years, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, years)
}

// GetActiveYear returns the active fiscal year together with the fiscal
// month today falls in, so data-entry screens can preselect it.
func (h *YearHandler) GetActiveYear(c *gin.Context) {
	year, err := h.service.GetActive(c)
	if err != nil {
		if errors.Is(err, forecast.ErrNoActiveYear) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"year": year, "current_month": forecast.CurrentMonth(time.Now())})
}

func (h *YearHandler) CreateYear(c *gin.Context) {
	var year models.FiscalYear
	if err := c.ShouldBindJSON(&year); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &year); err != nil {
		c.JSON(yearErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, year)
}

func (h *YearHandler) UpdateYear(c *gin.Context) {
	id, ok := uintParam(c, "year_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid year ID"})
		return
	}

	var year models.FiscalYear
	if err := c.ShouldBindJSON(&year); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	year.ID = id

	if err := h.service.Update(c, &year); err != nil {
		c.JSON(yearErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, year)
}

func (h *YearHandler) DeleteYear(c *gin.Context) {
	id, ok := uintParam(c, "year_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid year ID"})
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(yearErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Year deleted"})
}

func yearErrorStatus(err error) int {
	switch {
	case isValidationError(err):
		return 400
	case errors.Is(err, repositories.ErrYearNotFound):
		return 404
	case errors.Is(err, repositories.ErrYearLabelTaken),
		errors.Is(err, repositories.ErrActiveYearDelete),
		errors.Is(err, repositories.ErrLastYearDelete):
		return 409
	default:
		return 500
	}
}
