package dateutil

import "time"

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// Parse converts a yyyy-MM-dd string into a date at midnight UTC.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Format converts a date into its yyyy-MM-dd representation.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddDays returns the date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths returns the date n months after t (n may be negative).
// Out-of-range results carry over, see ComposeDate.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// WeekdayOf returns the weekday of t numbered 1 (Sunday) through 7 (Saturday).
// The numbering matches Schedule repeat anchors.
func WeekdayOf(t time.Time) int {
	return int(t.Weekday()) + 1
}

// IsLeapYear reports whether year is a leap year: divisible by 4,
// except centuries not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LastDayOfMonth returns the number of days in the given month (28-31).
func LastDayOfMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	// Out-of-range months are resolved through ComposeDate's carry-over.
	t := ComposeDate(year, month, 1)
	return LastDayOfMonth(t.Year(), int(t.Month()))
}

// ComposeDate builds a date from year, month and day components.
//
// Overflow policy: lenient carry-over. Out-of-range components are
// normalized by carrying the excess forward, so month 13 becomes January
// of the following year and day 31 in a 28-day February becomes March 3.
// Callers that need strict validation must range-check before calling.
func ComposeDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NormalizeYearMonth maps month 0 to December of the previous year and
// month 13 to January of the next year. Months 1-12 pass through.
func NormalizeYearMonth(year, month int) (int, int) {
	if month < 1 {
		return year - 1, month + 12
	}
	if month > 12 {
		return year + 1, month - 12
	}
	return year, month
}
