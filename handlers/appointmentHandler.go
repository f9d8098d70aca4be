package handlers

import (
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	month, okMonth := intQuery(c, "month")
	specialtyID, okSpecialty := uintQuery(c, "specialty_id")
	if !okYear || !okEPS || !okMonth || !okSpecialty {
		c.JSON(400, gin.H{"error": "Invalid filter parameters"})
		return
	}

	appointments, err := h.service.List(c, yearID, epsID, month, specialtyID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.CompletedAppointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &appointment); err != nil {
		if isValidationError(err) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := uintParam(c, "appointment_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Appointment deleted"})
}

// GetAppointmentSummaries returns projected vs completed per specialty for
// the month, the view behind the fulfilled-appointments screen.
func (h *AppointmentHandler) GetAppointmentSummaries(c *gin.Context) {
	yearID, okYear := uintQuery(c, "year_id")
	epsID, okEPS := uintQuery(c, "eps_id")
	month, okMonth := intQuery(c, "month")
	if !okYear || !okEPS || !okMonth {
		c.JSON(400, gin.H{"error": "Invalid filter parameters"})
		return
	}

	summaries, err := h.service.Summaries(c, yearID, epsID, month)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summaries)
}

func (h *AppointmentHandler) GetAllSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, specialties)
}
