package forecast_test

import (
	"Pronostico/forecast"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Febrero", forecast.MonthName(1))
	assert.Equal(t, "Julio", forecast.MonthName(6))
	assert.Equal(t, "Enero", forecast.MonthName(12))
	assert.Equal(t, "", forecast.MonthName(0))
	assert.Equal(t, "", forecast.MonthName(13))
}

func TestCalendarMonth(t *testing.T) {
	month, offset := forecast.CalendarMonth(1)
	assert.Equal(t, time.February, month)
	assert.Equal(t, 0, offset)

	month, offset = forecast.CalendarMonth(11)
	assert.Equal(t, time.December, month)
	assert.Equal(t, 0, offset)

	// Fiscal month 12 is January of the following calendar year.
	month, offset = forecast.CalendarMonth(12)
	assert.Equal(t, time.January, month)
	assert.Equal(t, 1, offset)
}

func TestCurrentMonth(t *testing.T) {
	assert.Equal(t, 1, forecast.CurrentMonth(time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11, forecast.CurrentMonth(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 12, forecast.CurrentMonth(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)))
}
