package calendar

import (
	"context"
	"fmt"

	"github.com/officio/officio/pkg/dateutil"
)

type Service struct {
	dates       DateSource
	occurrences OccurrenceSource
}

func NewService(dates DateSource, occurrences OccurrenceSource) *Service {
	return &Service{
		dates:       dates,
		occurrences: occurrences,
	}
}

// BuildMonthView returns one DayView per calendar day of the month, in
// ascending date order. Days the date dimension does not cover get an
// empty color. The month must already be normalized to 1-12; handlers
// apply dateutil.NormalizeYearMonth first.
func (s *Service) BuildMonthView(ctx context.Context, year, month int) ([]DayView, error) {
	rows, err := s.dates.GetMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get date dimension rows: %w", err)
	}
	colors := make(map[string]string, len(rows))
	for _, row := range rows {
		colors[dateutil.Format(row.Date)] = row.Color
	}

	lastDay := dateutil.LastDayOfMonth(year, month)
	views := make([]DayView, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		date := dateutil.ComposeDate(year, month, day)

		occurrences, err := s.occurrences.OccurrencesOn(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to get occurrences for %s: %w", dateutil.Format(date), err)
		}

		views = append(views, DayView{
			Date:        date,
			Day:         day,
			DayOfWeek:   dateutil.WeekdayOf(date),
			Color:       colors[dateutil.Format(date)],
			Occurrences: occurrences,
		})
	}
	return views, nil
}
