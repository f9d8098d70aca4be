package services

import (
	"Pronostico/models"
	"Pronostico/repositories"
	"Pronostico/utils"
	"context"
)

type EPSService struct {
	repository *repositories.EPSRepository
}

func NewEPSService(repository *repositories.EPSRepository) *EPSService {
	return &EPSService{repository: repository}
}

func (s *EPSService) GetAll(ctx context.Context, includeInactive bool) ([]models.EPS, error) {
	return s.repository.GetAll(ctx, includeInactive)
}

func (s *EPSService) Create(ctx context.Context, eps *models.EPS) error {
	if err := utils.ValidateEPS(eps); err != nil {
		return err
	}
	return s.repository.Create(ctx, eps)
}

func (s *EPSService) Update(ctx context.Context, eps *models.EPS) error {
	if err := utils.ValidateEPS(eps); err != nil {
		return err
	}
	return s.repository.Update(ctx, eps)
}

func (s *EPSService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}

func (s *EPSService) GetContractedServices(ctx context.Context, epsID uint) ([]repositories.ContractedServiceRow, error) {
	return s.repository.GetContractedServices(ctx, epsID)
}

func (s *EPSService) SaveContractedServices(ctx context.Context, epsID uint, services []models.ContractedService) error {
	return s.repository.SaveContractedServices(ctx, epsID, services)
}
