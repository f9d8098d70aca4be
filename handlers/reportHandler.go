package handlers

import (
	"Pronostico/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GetMonthlyReport(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	month, okMonth := intQuery(c, "month")
	if !okYear || !okEPS || !okMonth || yearID == 0 || month < 1 || month > 12 {
		c.JSON(400, gin.H{"error": "year_id and a month between 1 and 12 are required"})
		return
	}

	report, err := h.service.Monthly(c, yearID, epsID, month)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, report)
}

func (h *ReportHandler) GetSemesterReport(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	semester, okSemester := intQuery(c, "semester")
	if !okYear || !okEPS || !okSemester || yearID == 0 {
		c.JSON(400, gin.H{"error": "year_id and semester are required"})
		return
	}

	report, err := h.service.Semester(c, yearID, epsID, semester)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSemester) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, report)
}

func (h *ReportHandler) GetAnnualReport(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	if !okYear || !okEPS || yearID == 0 {
		c.JSON(400, gin.H{"error": "year_id is required"})
		return
	}

	report, err := h.service.Annual(c, yearID, epsID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, report)
}

func (h *ReportHandler) GetEPSReport(c *gin.Context) {
	epsID, okParam := uintParam(c, "eps_id")
	yearID, okYear := uintQuery(c, "year_id")
	if !okParam || !okYear || yearID == 0 {
		c.JSON(400, gin.H{"error": "eps_id and year_id are required"})
		return
	}

	report, err := h.service.EPS(c, yearID, epsID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, report)
}
