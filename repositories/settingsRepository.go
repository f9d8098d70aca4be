package repositories

import (
	"Pronostico/cache"
	"Pronostico/database"
	"Pronostico/forecast"
	"Pronostico/models"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	settingsCacheKey    = "settings_cache"
	SettingsCacheExpiry = 24 * time.Hour

	defaultWorkDays = "Monday,Tuesday,Wednesday,Thursday,Friday,Saturday"
	// defaultDistribution matches the seeded legacy vector: six slots, sums
	// to 96, predates the sum-to-100 rule applied to saved settings.
	defaultDistribution    = "19,19,19,19,19,5"
	defaultThresholdRed    = "70"
	defaultThresholdYellow = "90"
)

type SettingsRepository struct {
	cache *cache.Cache
}

func NewSettingsRepository(cache *cache.Cache) *SettingsRepository {
	return &SettingsRepository{cache: cache}
}

// GetSettings returns every known setting, applying defaults for keys that
// are not stored yet.
func (r *SettingsRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	settings := map[string]string{
		models.SettingWorkDays:        defaultWorkDays,
		models.SettingDistribution:    defaultDistribution,
		models.SettingThresholdRed:    defaultThresholdRed,
		models.SettingThresholdYellow: defaultThresholdYellow,
	}

	var cached map[string]string
	if found, _ := r.cache.GetJSON(ctx, settingsCacheKey, &cached); found {
		return cached, nil
	}

	var rows []models.Setting
	if err := database.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	r.cache.SetJSON(ctx, settingsCacheKey, settings, SettingsCacheExpiry)
	return settings, nil
}

// SaveSettings upserts the given key/value pairs in one transaction and
// invalidates the settings cache. Validation happens in the service layer
// before any write.
func (r *SettingsRepository) SaveSettings(ctx context.Context, values map[string]string) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := models.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return r.cache.Delete(ctx, settingsCacheKey)
}

// GetThresholds returns the compliance classification thresholds.
func (r *SettingsRepository) GetThresholds(ctx context.Context) (forecast.Thresholds, error) {
	settings, err := r.GetSettings(ctx)
	if err != nil {
		return forecast.Thresholds{}, err
	}
	return forecast.Thresholds{
		Red:    parseIntOr(settings[models.SettingThresholdRed], 70),
		Yellow: parseIntOr(settings[models.SettingThresholdYellow], 90),
	}, nil
}

// GetWorkDays returns the configured work days as time.Weekday values.
func (r *SettingsRepository) GetWorkDays(ctx context.Context) ([]time.Weekday, error) {
	settings, err := r.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return parseWorkDays(settings[models.SettingWorkDays]), nil
}

// settingValue reads one setting row on the given handle, falling back to
// the default when the key is absent. Used by the forecast store so engine
// reads see the same transactional view as engine writes.
func settingValue(ctx context.Context, db *gorm.DB, key, fallback string) (string, error) {
	var setting models.Setting
	err := db.WithContext(ctx).First(&setting, "setting_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, nil
}

func parseIntList(value string) []int {
	parts := strings.Split(value, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			n = 0
		}
		values = append(values, n)
	}
	return values
}

func parseIntOr(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

var weekdayByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

func parseWorkDays(value string) []time.Weekday {
	var days []time.Weekday
	for _, name := range strings.Split(value, ",") {
		if day, ok := weekdayByName[strings.TrimSpace(name)]; ok {
			days = append(days, day)
		}
	}
	return days
}
