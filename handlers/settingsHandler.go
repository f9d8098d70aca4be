package handlers

import (
	"Pronostico/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.Get(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, settings)
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if len(values) == 0 {
		c.JSON(400, gin.H{"error": "No settings provided"})
		return
	}
	if err := h.service.Save(c, values); err != nil {
		if isValidationError(err) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Settings saved"})
}

// GetThresholds returns the compliance thresholds on their own, for
// clients that only classify percentages.
func (h *SettingsHandler) GetThresholds(c *gin.Context) {
	thresholds, err := h.service.Thresholds(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"red": thresholds.Red, "yellow": thresholds.Yellow})
}

// GetWorkingDays counts the working days of a fiscal month, given the
// calendar year the fiscal year starts in.
func (h *SettingsHandler) GetWorkingDays(c *gin.Context) {
	yearStr := c.Query("year")
	baseYear, err := strconv.Atoi(yearStr)
	if err != nil || baseYear < 2000 || baseYear > 2100 {
		c.JSON(400, gin.H{"error": "Invalid year"})
		return
	}
	month, ok := intQuery(c, "month")
	if !ok || month < 1 || month > 12 {
		c.JSON(400, gin.H{"error": "Invalid month"})
		return
	}

	days, err := h.service.WorkingDays(c, baseYear, month)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"year": baseYear, "month": month, "working_days": days})
}
