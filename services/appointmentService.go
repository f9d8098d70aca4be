package services

import (
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/utils"
	"context"
)

type AppointmentService struct {
	repository *repositories.AppointmentRepository
}

func NewAppointmentService(repository *repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repository: repository}
}

func (s *AppointmentService) List(ctx context.Context, yearID, epsID uint, month int, specialtyID uint) ([]models.CompletedAppointment, error) {
	return s.repository.List(ctx, yearID, epsID, month, specialtyID)
}

func (s *AppointmentService) Create(ctx context.Context, appointment *models.CompletedAppointment) error {
	if err := utils.ValidateAppointment(appointment); err != nil {
		return err
	}
	return s.repository.Create(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}

func (s *AppointmentService) Summaries(ctx context.Context, yearID, epsID uint, month int) ([]repositories.AppointmentSummary, error) {
	return s.repository.Summaries(ctx, yearID, epsID, month)
}

func (s *AppointmentService) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	return s.repository.ListSpecialties(ctx)
}
