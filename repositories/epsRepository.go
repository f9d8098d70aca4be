package repositories

import (
	"Pronostico/cache"
	"Pronostico/database"
	"Pronostico/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	epsCacheKey    = "eps_cache"
	EPSCacheExpiry = 24 * time.Hour
)

var (
	ErrEPSNotFound   = errors.New("EPS not found")
	ErrEPSNameTaken  = errors.New("an EPS with that name already exists")
	ErrLastActiveEPS = errors.New("the last active EPS cannot be deleted")
)

type EPSRepository struct {
	cache *cache.Cache
}

func NewEPSRepository(cache *cache.Cache) *EPSRepository {
	return &EPSRepository{cache: cache}
}

// ContractedServiceRow is a contracted service joined with its specialty
// name for listing.
type ContractedServiceRow struct {
	SpecialtyID   uint   `json:"specialty_id"`
	SpecialtyName string `json:"specialty_name"`
	SpecialtyCode string `json:"specialty_code"`
	YearlyQty     int    `json:"yearly_qty"`
}

func (r *EPSRepository) GetAll(ctx context.Context, includeInactive bool) ([]models.EPS, error) {
	cacheKey := epsCacheKey
	if includeInactive {
		cacheKey = epsCacheKey + ":all"
	}
	var cached []models.EPS
	if found, _ := r.cache.GetJSON(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	query := database.DB.WithContext(ctx)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var eps []models.EPS
	if err := query.Order("name").Find(&eps).Error; err != nil {
		return nil, fmt.Errorf("failed to list EPS: %w", err)
	}

	r.cache.SetJSON(ctx, cacheKey, eps, EPSCacheExpiry)
	return eps, nil
}

// Create inserts a new EPS and seeds its contracted services from the
// default yearly-quantity table, all in one transaction.
func (r *EPSRepository) Create(ctx context.Context, eps *models.EPS) error {
	var existing models.EPS
	err := database.DB.WithContext(ctx).First(&existing, "name = ?", eps.Name).Error
	if err == nil {
		return ErrEPSNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check EPS name: %w", err)
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(eps).Error; err != nil {
			return err
		}

		var specialties []models.Specialty
		if err := tx.Find(&specialties).Error; err != nil {
			return err
		}
		for _, specialty := range specialties {
			service := models.ContractedService{
				EPSID:       eps.ID,
				SpecialtyID: specialty.ID,
				YearlyQty:   models.DefaultYearlyQty[specialty.Code],
			}
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create EPS: %w", err)
	}
	return r.invalidate(ctx)
}

func (r *EPSRepository) Update(ctx context.Context, eps *models.EPS) error {
	var existing models.EPS
	if err := database.DB.WithContext(ctx).First(&existing, "id = ?", eps.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEPSNotFound
		}
		return fmt.Errorf("failed to get EPS: %w", err)
	}

	var duplicate models.EPS
	err := database.DB.WithContext(ctx).First(&duplicate, "name = ? AND id != ?", eps.Name, eps.ID).Error
	if err == nil {
		return ErrEPSNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check EPS name: %w", err)
	}

	err = database.DB.WithContext(ctx).Model(&existing).
		Select("name", "active").
		Updates(map[string]interface{}{"name": eps.Name, "active": eps.Active}).Error
	if err != nil {
		return fmt.Errorf("failed to update EPS: %w", err)
	}
	return r.invalidate(ctx)
}

// Delete removes an EPS and every dependent record. The last active EPS is
// protected.
func (r *EPSRepository) Delete(ctx context.Context, id uint) error {
	var eps models.EPS
	if err := database.DB.WithContext(ctx).First(&eps, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEPSNotFound
		}
		return fmt.Errorf("failed to get EPS: %w", err)
	}

	if eps.Active {
		var activeCount int64
		if err := database.DB.WithContext(ctx).Model(&models.EPS{}).Where("active = ?", true).Count(&activeCount).Error; err != nil {
			return fmt.Errorf("failed to count active EPS: %w", err)
		}
		if activeCount <= 1 {
			return ErrLastActiveEPS
		}
	}

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Population{},
			&models.ProjectedAppointment{},
			&models.CompletedAppointment{},
			&models.ContractedService{},
		} {
			if err := tx.Where("eps_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.EPS{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete EPS: %w", err)
	}
	return r.invalidate(ctx)
}

func (r *EPSRepository) GetContractedServices(ctx context.Context, epsID uint) ([]ContractedServiceRow, error) {
	var rows []ContractedServiceRow
	err := database.DB.WithContext(ctx).
		Model(&models.ContractedService{}).
		Select("contracted_services.specialty_id, specialties.name AS specialty_name, specialties.code AS specialty_code, contracted_services.yearly_qty").
		Joins("JOIN specialties ON specialties.id = contracted_services.specialty_id").
		Where("contracted_services.eps_id = ?", epsID).
		Order("specialties.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get contracted services: %w", err)
	}
	return rows, nil
}

// SaveContractedServices upserts yearly quantities for an EPS. Negative
// quantities are clamped to zero.
func (r *EPSRepository) SaveContractedServices(ctx context.Context, epsID uint, services []models.ContractedService) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, service := range services {
			service.EPSID = epsID
			if service.YearlyQty < 0 {
				service.YearlyQty = 0
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "eps_id"}, {Name: "specialty_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"yearly_qty"}),
			}).Create(&service).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save contracted services: %w", err)
	}
	return nil
}

func (r *EPSRepository) invalidate(ctx context.Context) error {
	return r.cache.DeleteAll(ctx, epsCacheKey+"*")
}
