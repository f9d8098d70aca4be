package forecast

import "time"

// Fiscal months run February through January: month 1 is February of the
// fiscal year, month 12 is January of the following calendar year.

var monthNames = [12]string{
	"Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
	"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre", "Enero",
}

// MonthName returns the Spanish name of a fiscal month, or "" when the
// month is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// CalendarMonth converts a fiscal month into a calendar month plus the year
// offset relative to the fiscal year's starting calendar year (1 only for
// fiscal month 12, which is January of the next year).
func CalendarMonth(month int) (time.Month, int) {
	calendar := (month % 12) + 1
	if month == 12 {
		return time.January, 1
	}
	return time.Month(calendar), 0
}

// CurrentMonth maps a wall-clock time to the fiscal month it falls in.
func CurrentMonth(now time.Time) int {
	calendar := int(now.Month())
	if calendar == 1 {
		return 12
	}
	return calendar - 1
}
