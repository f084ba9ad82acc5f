package derive

import "time"

// AddMonths shifts t by whole months, clamping the day to the target month's
// length (Jan 31 + 1 month = Feb 28/29, not Mar 2). time.AddDate would
// normalize overflow instead, which silently shifts lease anniversaries.
func AddMonths(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	day := t.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDueDay bounds a nominal due day to [1, dueDayCeiling] so the resulting
// date always stays inside its (year, month).
func clampDueDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > dueDayCeiling {
		return dueDayCeiling
	}
	return day
}

// monthIndex flattens (year, month) for month-granularity window comparison.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// dateOnly truncates to UTC midnight so lead-day arithmetic compares whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
