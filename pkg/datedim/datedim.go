package datedim

import "time"

// DateRow is one day of the calendar date dimension: an externally
// maintained enumeration of days with display attributes. Coverage is
// extended ahead of time by the Generator; readers treat a missing day
// as "no special color", never as an error.
type DateRow struct {
	Date      time.Time
	Year      int
	Month     int
	Day       int
	DayOfWeek int // 1 = Sunday .. 7 = Saturday
	Color     string
}
