package utils

import (
	"Pronostico/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSettingsDistribution(t *testing.T) {
	err := ValidateSettings(map[string]string{
		models.SettingDistribution: "10,10,10,10,10,10,10,10,10,5,5,0",
	})
	assert.NoError(t, err)

	err = ValidateSettings(map[string]string{
		models.SettingDistribution: "50,30,10",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add up to 100")

	err = ValidateSettings(map[string]string{
		models.SettingDistribution: "50,abc,50",
	})
	assert.Error(t, err)
}

func TestValidateSettingsThresholds(t *testing.T) {
	err := ValidateSettings(map[string]string{
		models.SettingThresholdRed:    "70",
		models.SettingThresholdYellow: "90",
	})
	assert.NoError(t, err)

	err = ValidateSettings(map[string]string{
		models.SettingThresholdRed:    "90",
		models.SettingThresholdYellow: "70",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the yellow")

	err = ValidateSettings(map[string]string{
		models.SettingThresholdRed: "120",
	})
	assert.Error(t, err)
}

func TestValidateSettingsWorkDays(t *testing.T) {
	assert.NoError(t, ValidateSettings(map[string]string{
		models.SettingWorkDays: "Monday,Tuesday,Wednesday",
	}))
	assert.Error(t, ValidateSettings(map[string]string{
		models.SettingWorkDays: "Monday,Lunes",
	}))
	assert.Error(t, ValidateSettings(map[string]string{
		models.SettingWorkDays: "",
	}))
}

func TestValidateFiscalYearDates(t *testing.T) {
	year := &models.FiscalYear{
		Label:     "2025-2026",
		StartDate: "2025-02-01",
		EndDate:   "2026-01-31",
	}
	assert.NoError(t, ValidateFiscalYear(year))

	year.EndDate = "2025-01-31"
	assert.Error(t, ValidateFiscalYear(year))
}

func TestValidatePopulationConsistency(t *testing.T) {
	population := &models.Population{
		EPSID:            1,
		YearID:           1,
		Month:            3,
		TotalPopulation:  1000,
		ActivePopulation: 900,
	}
	assert.NoError(t, ValidatePopulation(population))

	population.ActivePopulation = 1100
	assert.Error(t, ValidatePopulation(population))

	population.ActivePopulation = 900
	population.Month = 13
	assert.Error(t, ValidatePopulation(population))
}

func TestValidateAppointment(t *testing.T) {
	appointment := &models.CompletedAppointment{
		EPSID:           1,
		YearID:          1,
		SpecialtyID:     2,
		Month:           4,
		AppointmentDate: "2025-05-12",
		Quantity:        3,
	}
	assert.NoError(t, ValidateAppointment(appointment))

	appointment.Quantity = 0
	assert.Error(t, ValidateAppointment(appointment))
}
