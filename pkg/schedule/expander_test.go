package schedule

import (
	"testing"
	"time"

	"github.com/officio/officio/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.Parse(s)
	require.NoError(t, err)
	return d
}

func dates(occurrences []Occurrence) []string {
	out := make([]string, 0, len(occurrences))
	for _, o := range occurrences {
		out = append(out, dateutil.Format(o.Date))
	}
	return out
}

func TestExpand_SingleRange(t *testing.T) {
	s := Schedule{
		Id:         7,
		Title:      "Team offsite",
		UserId:     3,
		Color:      "#1A73E8",
		StartDate:  date(t, "2024-03-01"),
		StartHour:  9,
		EndDate:    date(t, "2024-03-05"),
		RepeatType: RepeatNone,
	}

	occurrences, err := Expand(s)
	require.NoError(t, err)
	require.Len(t, occurrences, 5)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}, dates(occurrences))
	for i, o := range occurrences {
		assert.Equal(t, i+1, o.Seq)
		assert.Equal(t, 7, o.ScheduleId)
		assert.Equal(t, 3, o.UserId)
		assert.Equal(t, 9, o.Hour)
		assert.Equal(t, "Team offsite", o.Title)
		assert.Equal(t, "#1A73E8", o.Color)
	}
}

func TestExpand_SingleRange_EndBeforeStart(t *testing.T) {
	s := Schedule{
		StartDate:  date(t, "2024-03-05"),
		EndDate:    date(t, "2024-03-01"),
		RepeatType: RepeatNone,
	}

	occurrences, err := Expand(s)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpand_Weekly(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		anchor    int
		repeatEnd string
		want      []string
	}{
		{
			// 2024-03-01 is a Friday (weekday 6).
			name:      "start already on anchor",
			start:     "2024-03-01",
			anchor:    6,
			repeatEnd: "2024-03-22",
			want:      []string{"2024-03-01", "2024-03-08", "2024-03-15", "2024-03-22"},
		},
		{
			// Monday start advances forward to the first Friday.
			name:      "anchor not yet reached",
			start:     "2024-03-04",
			anchor:    6,
			repeatEnd: "2024-03-22",
			want:      []string{"2024-03-08", "2024-03-15", "2024-03-22"},
		},
		{
			name:      "anchor lands past repeat end",
			start:     "2024-03-04",
			anchor:    1, // next Sunday is 2024-03-10
			repeatEnd: "2024-03-08",
			want:      []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Schedule{
				StartDate:    date(t, tc.start),
				RepeatType:   RepeatWeekly,
				RepeatAnchor: tc.anchor,
				RepeatEnd:    date(t, tc.repeatEnd),
			}
			occurrences, err := Expand(s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, dates(occurrences))
			for i, o := range occurrences {
				assert.Equal(t, i+1, o.Seq)
			}
		})
	}
}

func TestExpand_Weekly_InvalidAnchor(t *testing.T) {
	s := Schedule{
		StartDate:    date(t, "2024-03-01"),
		RepeatType:   RepeatWeekly,
		RepeatAnchor: 9,
		RepeatEnd:    date(t, "2024-03-22"),
	}

	occurrences, err := Expand(s)
	assert.ErrorIs(t, err, ErrInvalidRepeatAnchor)
	assert.Empty(t, occurrences)
}

func TestExpand_Weekly_RepeatEndBeforeStart(t *testing.T) {
	s := Schedule{
		StartDate:    date(t, "2024-03-22"),
		RepeatType:   RepeatWeekly,
		RepeatAnchor: 6,
		RepeatEnd:    date(t, "2024-03-01"),
	}

	occurrences, err := Expand(s)
	assert.ErrorIs(t, err, ErrRepeatEndBeforeStart)
	assert.Empty(t, occurrences)
}

func TestExpand_Monthly(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		anchor    int
		repeatEnd string
		want      []string
	}{
		{
			name:      "start before anchor day",
			start:     "2024-03-05",
			anchor:    10,
			repeatEnd: "2024-06-10",
			want:      []string{"2024-03-10", "2024-04-10", "2024-05-10", "2024-06-10"},
		},
		{
			// Day 10 of March is already past, so March is skipped.
			name:      "start after anchor day",
			start:     "2024-03-20",
			anchor:    10,
			repeatEnd: "2024-06-10",
			want:      []string{"2024-04-10", "2024-05-10", "2024-06-10"},
		},
		{
			// Anchor day 31 carries over in short months: February (leap)
			// rolls to March 2 and April rolls to May 1.
			name:      "month end carry over",
			start:     "2024-01-01",
			anchor:    31,
			repeatEnd: "2024-05-31",
			want:      []string{"2024-01-31", "2024-03-02", "2024-03-31", "2024-05-01", "2024-05-31"},
		},
		{
			name:      "crosses year boundary",
			start:     "2023-11-15",
			anchor:    20,
			repeatEnd: "2024-01-20",
			want:      []string{"2023-11-20", "2023-12-20", "2024-01-20"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Schedule{
				StartDate:    date(t, tc.start),
				RepeatType:   RepeatMonthly,
				RepeatAnchor: tc.anchor,
				RepeatEnd:    date(t, tc.repeatEnd),
			}
			occurrences, err := Expand(s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, dates(occurrences))
			for i, o := range occurrences {
				assert.Equal(t, i+1, o.Seq)
			}
		})
	}
}

func TestExpand_Monthly_InvalidAnchor(t *testing.T) {
	s := Schedule{
		StartDate:    date(t, "2024-03-01"),
		RepeatType:   RepeatMonthly,
		RepeatAnchor: 32,
		RepeatEnd:    date(t, "2024-06-30"),
	}

	occurrences, err := Expand(s)
	assert.ErrorIs(t, err, ErrInvalidRepeatAnchor)
	assert.Empty(t, occurrences)
}

func TestExpand_UnknownRepeatType(t *testing.T) {
	s := Schedule{
		StartDate:  date(t, "2024-03-01"),
		EndDate:    date(t, "2024-03-05"),
		RepeatType: "yearly",
	}

	occurrences, err := Expand(s)
	assert.ErrorIs(t, err, ErrUnknownRepeatType)
	assert.Empty(t, occurrences)
}

func TestExpand_Deterministic(t *testing.T) {
	s := Schedule{
		Id:           12,
		Title:        "Standup",
		UserId:       5,
		StartDate:    date(t, "2024-03-04"),
		RepeatType:   RepeatWeekly,
		RepeatAnchor: 2,
		RepeatEnd:    date(t, "2024-09-30"),
	}

	first, err := Expand(s)
	require.NoError(t, err)
	second, err := Expand(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
