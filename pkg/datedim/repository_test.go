package datedim

import (
	"context"
	"testing"

	"github.com/officio/officio/internal/test_utils"
	"github.com/officio/officio/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *RepositoryImpl {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db)
}

func marchRows(t *testing.T) []DateRow {
	t.Helper()
	rows := make([]DateRow, 0, 31)
	for day := 1; day <= 31; day++ {
		date := dateutil.ComposeDate(2024, 3, day)
		rows = append(rows, DateRow{
			Date:      date,
			Year:      2024,
			Month:     3,
			Day:       day,
			DayOfWeek: dateutil.WeekdayOf(date),
		})
	}
	return rows
}

func TestRepositoryImpl_InsertAndGetMonth(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.InsertRows(ctx, marchRows(t))
	require.NoError(t, err)
	assert.Equal(t, 31, inserted)

	rows, err := repo.GetMonth(ctx, 2024, 3)
	require.NoError(t, err)
	require.Len(t, rows, 31)
	assert.Equal(t, 1, rows[0].Day)
	assert.Equal(t, 31, rows[30].Day)
	// 2024-03-03 is a Sunday.
	assert.Equal(t, 1, rows[2].DayOfWeek)
}

func TestRepositoryImpl_InsertRows_ConflictSkipped(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	_, err := repo.InsertRows(ctx, marchRows(t))
	require.NoError(t, err)

	inserted, err := repo.InsertRows(ctx, marchRows(t))
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestRepositoryImpl_MaxDate(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	_, ok, err := repo.MaxDate(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.InsertRows(ctx, marchRows(t))
	require.NoError(t, err)

	maxDate, ok, err := repo.MaxDate(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-31", dateutil.Format(maxDate))
}

func TestRepositoryImpl_GetMonth_Uncovered(t *testing.T) {
	repo := setupTestRepository(t)

	rows, err := repo.GetMonth(context.Background(), 2031, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
