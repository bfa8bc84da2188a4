// Package dates provides leap-year-safe calendar arithmetic for shifting
// seasonal windows between years.
package dates

import "time"

// ShiftYear replaces the year component of d, keeping month and day.
// Feb 29 shifted into a non-leap year falls back to Feb 28; every result
// is a valid calendar date at UTC midnight.
func ShiftYear(d time.Time, year int) time.Time {
	shifted := time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() == time.February && d.Day() == 29 && shifted.Month() == time.March {
		return time.Date(year, time.February, 28, 0, 0, 0, 0, time.UTC)
	}
	return shifted
}

// ShiftWindow shifts both ends of a [start, end] window into year.
// A window spanning a year boundary would otherwise end before it starts
// after the shift; in that case the end is re-shifted into year+1.
func ShiftWindow(start, end time.Time, year int) (time.Time, time.Time) {
	s := ShiftYear(start, year)
	e := ShiftYear(end, year)
	if e.Before(s) {
		e = ShiftYear(end, year+1)
	}
	return s, e
}
