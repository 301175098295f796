package calendar

import "time"

// DaysInMonth returns the number of days in the given 1-based month of
// the given year. Month values beyond 12 roll over into following years,
// so multi-year simulation horizons resolve a valid day count.
func DaysInMonth(month, year int) int {
	year += (month - 1) / 12
	month = (month-1)%12 + 1

	// Day 0 of the next month is the last day of this month.
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Day()
}

// DaysInYear returns the total day count covered by months 1..months of
// a simulation starting in the given year.
func DaysInYear(months, year int) int {
	total := 0
	for m := 1; m <= months; m++ {
		total += DaysInMonth(m, year)
	}
	return total
}
