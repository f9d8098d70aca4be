package utils

import "time"

// CountWorkingDays counts the days of a calendar month that fall on one of
// the given weekdays.
func CountWorkingDays(year int, month time.Month, workDays []time.Weekday) int {
	working := make(map[time.Weekday]bool, len(workDays))
	for _, day := range workDays {
		working[day] = true
	}

	count := 0
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		if working[day.Weekday()] {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
