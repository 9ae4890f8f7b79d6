package calendar

import (
	"context"
	"time"

	"github.com/officio/officio/pkg/datedim"
	"github.com/officio/officio/pkg/schedule"
)

// DayView is the ephemeral per-day aggregate for month-view rendering:
// date-dimension attributes merged with the requesting user's
// occurrences. It is built per request and never persisted.
type DayView struct {
	Date        time.Time
	Day         int
	DayOfWeek   int // 1 = Sunday .. 7 = Saturday
	Color       string
	Occurrences []schedule.Occurrence
}

// DateSource supplies date-dimension rows for a month.
type DateSource interface {
	GetMonth(ctx context.Context, year, month int) ([]datedim.DateRow, error)
}

// OccurrenceSource supplies the current user's visible occurrences for a
// single date.
type OccurrenceSource interface {
	OccurrencesOn(ctx context.Context, date time.Time) ([]schedule.Occurrence, error)
}
