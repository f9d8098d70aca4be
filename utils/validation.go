package utils

import (
	"Pronostico/models"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation errors
var (
	ErrDistributionSum      = errors.New("distribution percentages must add up to 100")
	ErrDistributionValue    = errors.New("distribution values must be integers between 0 and 100")
	ErrThresholdOrder       = errors.New("red threshold must be below the yellow threshold")
	ErrThresholdRange       = errors.New("thresholds must be between 0 and 100")
	ErrNoWorkDays           = errors.New("at least one work day is required")
	ErrUnknownWorkDay       = errors.New("unknown work day name")
	ErrDateOrder            = errors.New("end date must be after the start date")
	ErrPopulationConsistent = errors.New("active population cannot exceed total population")
)

const dateLayout = "2006-01-02"

// ValidateEPS validates a provider using ozzo-validation.
func ValidateEPS(eps *models.EPS) error {
	err := validation.ValidateStruct(eps,
		validation.Field(&eps.Name, validation.Required, validation.Length(2, 150)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateFiscalYear validates a fiscal year definition.
func ValidateFiscalYear(year *models.FiscalYear) error {
	err := validation.ValidateStruct(year,
		validation.Field(&year.Label, validation.Required, validation.Length(4, 50)),
		validation.Field(&year.StartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&year.EndDate, validation.Required, validation.Date(dateLayout), validation.By(dateAfter(year.StartDate))),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePopulation validates a monthly population record.
func ValidatePopulation(population *models.Population) error {
	err := validation.ValidateStruct(population,
		validation.Field(&population.EPSID, validation.Required),
		validation.Field(&population.YearID, validation.Required),
		validation.Field(&population.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&population.TotalPopulation, validation.Min(0)),
		validation.Field(&population.ActivePopulation, validation.Min(0), validation.Max(population.TotalPopulation).Error(ErrPopulationConsistent.Error())),
		validation.Field(&population.FertileWomen, validation.Min(0)),
		validation.Field(&population.PregnantWomen, validation.Min(0)),
		validation.Field(&population.Adults, validation.Min(0)),
		validation.Field(&population.PediatricDiagnosed, validation.Min(0)),
		validation.Field(&population.MinorsFollowUp, validation.Min(0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAppointment validates a completed-appointment record.
func ValidateAppointment(appointment *models.CompletedAppointment) error {
	err := validation.ValidateStruct(appointment,
		validation.Field(&appointment.EPSID, validation.Required),
		validation.Field(&appointment.YearID, validation.Required),
		validation.Field(&appointment.SpecialtyID, validation.Required),
		validation.Field(&appointment.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&appointment.AppointmentDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&appointment.Quantity, validation.Required, validation.Min(1)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateSettings checks the keys present in the payload. Partial updates
// are allowed; unknown keys pass through untouched.
func ValidateSettings(values map[string]string) error {
	errs := validation.Errors{}
	if distribution, ok := values[models.SettingDistribution]; ok {
		errs[models.SettingDistribution] = validateDistribution(distribution)
	}
	if workDays, ok := values[models.SettingWorkDays]; ok {
		errs[models.SettingWorkDays] = validateWorkDayNames(workDays)
	}
	red, hasRed := values[models.SettingThresholdRed]
	yellow, hasYellow := values[models.SettingThresholdYellow]
	if hasRed {
		errs[models.SettingThresholdRed] = validateThreshold(red)
	}
	if hasYellow {
		errs[models.SettingThresholdYellow] = validateThreshold(yellow)
	}
	if hasRed && hasYellow && errs[models.SettingThresholdRed] == nil && errs[models.SettingThresholdYellow] == nil {
		redValue, _ := strconv.Atoi(strings.TrimSpace(red))
		yellowValue, _ := strconv.Atoi(strings.TrimSpace(yellow))
		if redValue >= yellowValue {
			errs[models.SettingThresholdRed] = ErrThresholdOrder
		}
	}

	err := errs.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func validateDistribution(value string) error {
	sum := 0
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 100 {
			return ErrDistributionValue
		}
		sum += n
	}
	if sum != 100 {
		return ErrDistributionSum
	}
	return nil
}

func validateThreshold(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 || n > 100 {
		return ErrThresholdRange
	}
	return nil
}

func validateWorkDayNames(value string) error {
	names := strings.Split(value, ",")
	count := 0
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, ok := dayByName[trimmed]; !ok {
			return ErrUnknownWorkDay
		}
		count++
	}
	if count == 0 {
		return ErrNoWorkDays
	}
	return nil
}

func dateAfter(start string) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(string)
		startDate, err := time.Parse(dateLayout, start)
		if err != nil {
			// Reported by the start-date rule already.
			return nil
		}
		endDate, err := time.Parse(dateLayout, end)
		if err != nil {
			return nil
		}
		if !endDate.After(startDate) {
			return ErrDateOrder
		}
		return nil
	}
}

var dayByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}
