package handlers

import (
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type EPSHandler struct {
	service *services.EPSService
}

func NewEPSHandler(service *services.EPSService) *EPSHandler {
	return &EPSHandler{service: service}
}

func (h *EPSHandler) GetAllEPS(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	eps, err := h.service.GetAll(c, includeInactive)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, eps)
}

func (h *EPSHandler) CreateEPS(c *gin.Context) {
	var eps models.EPS
	if err := c.ShouldBindJSON(&eps); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &eps); err != nil {
		c.JSON(epsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, eps)
}

func (h *EPSHandler) UpdateEPS(c *gin.Context) {
	id, ok := uintParam(c, "eps_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid EPS ID"})
		return
	}

	var eps models.EPS
	if err := c.ShouldBindJSON(&eps); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	eps.ID = id

	if err := h.service.Update(c, &eps); err != nil {
		c.JSON(epsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, eps)
}

func (h *EPSHandler) DeleteEPS(c *gin.Context) {
	id, ok := uintParam(c, "eps_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid EPS ID"})
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(epsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "EPS deleted"})
}

func (h *EPSHandler) GetContractedServices(c *gin.Context) {
	id, ok := uintParam(c, "eps_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid EPS ID"})
		return
	}
	rows, err := h.service.GetContractedServices(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, rows)
}

func (h *EPSHandler) SaveContractedServices(c *gin.Context) {
	id, ok := uintParam(c, "eps_id")
	if !ok {
		c.JSON(400, gin.H{"error": "Invalid EPS ID"})
		return
	}

	var payload []models.ContractedService
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SaveContractedServices(c, id, payload); err != nil {
		c.JSON(epsErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Contracted services saved"})
}

func epsErrorStatus(err error) int {
	switch {
	case isValidationError(err):
		return 400
	case errors.Is(err, repositories.ErrEPSNotFound):
		return 404
	case errors.Is(err, repositories.ErrEPSNameTaken), errors.Is(err, repositories.ErrLastActiveEPS):
		return 409
	default:
		return 500
	}
}
