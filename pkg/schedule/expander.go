package schedule

import (
	"fmt"
	"time"

	"github.com/officio/officio/pkg/dateutil"
)

// Expand computes the full occurrence set a schedule stands for.
// It is pure: the same schedule always yields the same occurrences with
// the same sequence numbers, which is what makes delete-then-regenerate
// on every save safe.
func Expand(s Schedule) ([]Occurrence, error) {
	switch s.RepeatType {
	case RepeatNone:
		return expandSingle(s), nil
	case RepeatWeekly:
		return expandWeekly(s)
	case RepeatMonthly:
		return expandMonthly(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepeatType, s.RepeatType)
	}
}

// expandSingle emits one occurrence per day from start date through end
// date inclusive. An end date before the start date yields nothing; the
// caller treats that as an empty range, not an error.
func expandSingle(s Schedule) []Occurrence {
	var occurrences []Occurrence
	date := s.StartDate
	for seq := 1; !date.After(s.EndDate); seq++ {
		occurrences = append(occurrences, occurrenceAt(s, date, seq))
		date = dateutil.AddDays(date, 1)
	}
	return occurrences
}

func expandWeekly(s Schedule) ([]Occurrence, error) {
	if s.RepeatAnchor < 1 || s.RepeatAnchor > 7 {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidRepeatAnchor, s.RepeatAnchor)
	}
	if s.RepeatEnd.Before(s.StartDate) {
		return nil, ErrRepeatEndBeforeStart
	}

	// Advance to the first anchored weekday. Each weekday occurs exactly
	// once within any 7 consecutive days, so the loop is capped at 7.
	date := s.StartDate
	for i := 0; i < 7 && dateutil.WeekdayOf(date) != s.RepeatAnchor; i++ {
		date = dateutil.AddDays(date, 1)
	}

	var occurrences []Occurrence
	for seq := 1; !date.After(s.RepeatEnd); seq++ {
		occurrences = append(occurrences, occurrenceAt(s, date, seq))
		date = dateutil.AddDays(date, 7)
	}
	return occurrences, nil
}

func expandMonthly(s Schedule) ([]Occurrence, error) {
	if s.RepeatAnchor < 1 || s.RepeatAnchor > 31 {
		return nil, fmt.Errorf("%w: day of month %d", ErrInvalidRepeatAnchor, s.RepeatAnchor)
	}
	if s.RepeatEnd.Before(s.StartDate) {
		return nil, ErrRepeatEndBeforeStart
	}

	// The candidate is composed from a nominal (year, month) cursor so that
	// a carried-over date (day 31 in February rolling into March) does not
	// shift which month comes next. See dateutil.ComposeDate for the
	// carry-over policy.
	year := s.StartDate.Year()
	month := int(s.StartDate.Month())
	candidate := dateutil.ComposeDate(year, month, s.RepeatAnchor)
	if candidate.Before(s.StartDate) {
		month++
		candidate = dateutil.ComposeDate(year, month, s.RepeatAnchor)
	}

	var occurrences []Occurrence
	for seq := 1; !candidate.After(s.RepeatEnd); seq++ {
		occurrences = append(occurrences, occurrenceAt(s, candidate, seq))
		month++
		candidate = dateutil.ComposeDate(year, month, s.RepeatAnchor)
	}
	return occurrences, nil
}

// occurrenceAt snapshots the schedule onto a single generated day. Title
// and color are copies taken at generation time; edits to the schedule
// reach occurrences only through regeneration.
func occurrenceAt(s Schedule, date time.Time, seq int) Occurrence {
	return Occurrence{
		ScheduleId: s.Id,
		Date:       date,
		Hour:       s.StartHour,
		Minute:     s.StartMinute,
		UserId:     s.UserId,
		Title:      s.Title,
		Color:      s.Color,
		Seq:        seq,
	}
}
