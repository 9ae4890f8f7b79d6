package schedule

import (
	"errors"
	"time"
)

// RepeatType selects how a schedule expands into occurrences.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")

	// Validation errors returned by Expand. A save carrying one of these
	// rolls back without touching the stored occurrence set.
	ErrUnknownRepeatType    = errors.New("unknown repeat type")
	ErrInvalidRepeatAnchor  = errors.New("invalid repeat anchor")
	ErrRepeatEndBeforeStart = errors.New("repeat end date is before start date")
)

// IsValidationErr reports whether err is one of the schedule validation
// errors, as opposed to a storage failure.
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrUnknownRepeatType) ||
		errors.Is(err, ErrInvalidRepeatAnchor) ||
		errors.Is(err, ErrRepeatEndBeforeStart)
}

// Schedule is a user-authored event definition, possibly repeating.
// A zero Id marks a schedule that has not been stored yet.
type Schedule struct {
	Id       int
	Uid      string
	Title    string
	Category string
	Contents string
	Open     bool
	UserId   int
	Color    string

	StartDate   time.Time
	StartHour   int
	StartMinute int
	EndDate     time.Time
	EndHour     int
	EndMinute   int

	// RepeatAnchor is a weekday 1 (Sunday) - 7 (Saturday) for weekly
	// schedules and a day of month 1-31 for monthly ones.
	RepeatType   RepeatType
	RepeatAnchor int
	// RepeatEnd is the inclusive upper bound for generated occurrences.
	// Ignored when RepeatType is RepeatNone (EndDate bounds the walk).
	RepeatEnd time.Time
}

// Occurrence is one concrete calendar-day instance generated from a
// Schedule. Occurrences are owned by their schedule and always replaced
// as a whole set, never edited individually.
type Occurrence struct {
	ScheduleId int
	Date       time.Time
	Hour       int
	Minute     int
	UserId     int
	Title      string
	Color      string
	Seq        int
}
