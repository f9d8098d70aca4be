package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountWorkingDaysMondayToSaturday(t *testing.T) {
	workDays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}

	// February 2025 has 28 days and 4 Sundays.
	assert.Equal(t, 24, CountWorkingDays(2025, time.February, workDays))
	// March 2025 has 31 days and 5 Sundays.
	assert.Equal(t, 26, CountWorkingDays(2025, time.March, workDays))
}

func TestCountWorkingDaysSingleDay(t *testing.T) {
	// June 2025 has 5 Mondays (2, 9, 16, 23, 30).
	assert.Equal(t, 5, CountWorkingDays(2025, time.June, []time.Weekday{time.Monday}))
}

func TestCountWorkingDaysEmpty(t *testing.T) {
	assert.Equal(t, 0, CountWorkingDays(2025, time.February, nil))
}

func TestCountWorkingDaysLeapFebruary(t *testing.T) {
	all := []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	assert.Equal(t, 29, CountWorkingDays(2024, time.February, all))
}
