package datedim

import (
	"context"
	"fmt"
	"time"

	"github.com/officio/officio/internal/utils"
	"github.com/officio/officio/pkg/dateutil"
	log "github.com/sirupsen/logrus"
)

// HorizonDays is how far ahead of "today" the dimension is kept covered.
const HorizonDays = 300

// initialStart seeds an empty table.
var initialStart = dateutil.ComposeDate(2020, 1, 1)

// Colors are the display colors stamped onto weekend rows. Weekday rows
// get no color; holiday coloring is maintained by hand.
type Colors struct {
	Sunday   string
	Saturday string
}

// Generator extends the date-dimension table. It runs from a daily cron
// trigger and from the admin endpoint; both paths are idempotent because
// already covered days are skipped.
type Generator struct {
	repo   Repository
	clock  utils.Clock
	colors Colors
}

func NewGenerator(repo Repository, clock utils.Clock, colors Colors) *Generator {
	return &Generator{repo: repo, clock: clock, colors: colors}
}

// Extend fills the dimension for the given range and returns the number
// of days inserted. A zero from continues after the last covered date
// (or from the initial seed date on an empty table); a zero to closes
// the range HorizonDays after its start.
func (g *Generator) Extend(ctx context.Context, from, to time.Time) (int, error) {
	if from.IsZero() {
		maxDate, ok, err := g.repo.MaxDate(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read dimension coverage: %w", err)
		}
		if ok {
			from = dateutil.AddDays(maxDate, 1)
			if to.IsZero() {
				to = dateutil.AddDays(from, HorizonDays-1)
			}
		} else {
			from = initialStart
			if to.IsZero() {
				to = dateutil.AddDays(today(g.clock), HorizonDays)
			}
		}
	} else if to.IsZero() {
		to = dateutil.AddDays(from, HorizonDays-1)
	}

	if to.Before(from) {
		return 0, fmt.Errorf("invalid range: %s is before %s", dateutil.Format(to), dateutil.Format(from))
	}

	rows := make([]DateRow, 0, 366)
	for date := from; !date.After(to); date = dateutil.AddDays(date, 1) {
		rows = append(rows, g.rowFor(date))
	}

	inserted, err := g.repo.InsertRows(ctx, rows)
	if err != nil {
		return inserted, fmt.Errorf("failed to insert dimension rows: %w", err)
	}
	log.Infof("date dimension extended: %s..%s, %d rows inserted", dateutil.Format(from), dateutil.Format(to), inserted)
	return inserted, nil
}

// EnsureCoverage is the cron entry point: it tops the table up so that
// coverage reaches HorizonDays past today.
func (g *Generator) EnsureCoverage(ctx context.Context) (int, error) {
	horizon := dateutil.AddDays(today(g.clock), HorizonDays)

	maxDate, ok, err := g.repo.MaxDate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read dimension coverage: %w", err)
	}
	if ok && !maxDate.Before(horizon) {
		return 0, nil
	}

	from := initialStart
	if ok {
		from = dateutil.AddDays(maxDate, 1)
	}
	return g.Extend(ctx, from, horizon)
}

func (g *Generator) rowFor(date time.Time) DateRow {
	row := DateRow{
		Date:      date,
		Year:      date.Year(),
		Month:     int(date.Month()),
		Day:       date.Day(),
		DayOfWeek: dateutil.WeekdayOf(date),
	}
	switch row.DayOfWeek {
	case 1:
		row.Color = g.colors.Sunday
	case 7:
		row.Color = g.colors.Saturday
	}
	return row
}

func today(clock utils.Clock) time.Time {
	now := clock.Now().UTC()
	return dateutil.ComposeDate(now.Year(), int(now.Month()), now.Day())
}
