// Package workdays provides Monday-through-Friday date arithmetic for leave
// requests and scheduling.
package workdays

import "time"

// IsWorkingDay reports whether t falls on a weekday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Count returns the number of working days between from and to inclusive.
// A range that ends before it starts counts zero. Times of day are ignored;
// only the calendar dates matter.
func Count(from, to time.Time) int {
	from = truncate(from)
	to = truncate(to)
	if to.Before(from) {
		return 0
	}

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			days++
		}
	}
	return days
}

// Add returns the date n working days after from, skipping weekends. Add with
// n of zero returns from unchanged.
func Add(from time.Time, n int) time.Time {
	d := truncate(from)
	for n > 0 {
		d = d.AddDate(0, 0, 1)
		if IsWorkingDay(d) {
			n--
		}
	}
	return d
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
