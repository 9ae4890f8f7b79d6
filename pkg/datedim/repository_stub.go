package datedim

import (
	"context"
	"sync"
	"time"

	"github.com/officio/officio/pkg/dateutil"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu   sync.RWMutex
	rows map[string]DateRow // yyyy-MM-dd -> row
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{rows: make(map[string]DateRow)}
}

func (r *RepositoryStub) GetMonth(ctx context.Context, year, month int) ([]DateRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]DateRow, 0, 31)
	last := dateutil.LastDayOfMonth(year, month)
	for day := 1; day <= last; day++ {
		if row, ok := r.rows[dateutil.Format(dateutil.ComposeDate(year, month, day))]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (r *RepositoryStub) MaxDate(ctx context.Context) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var maxKey string
	for key := range r.rows {
		if key > maxKey {
			maxKey = key
		}
	}
	if maxKey == "" {
		return time.Time{}, false, nil
	}
	date, err := dateutil.Parse(maxKey)
	if err != nil {
		return time.Time{}, false, err
	}
	return date, true, nil
}

func (r *RepositoryStub) InsertRows(ctx context.Context, rows []DateRow) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, row := range rows {
		key := dateutil.Format(row.Date)
		if _, ok := r.rows[key]; ok {
			continue
		}
		r.rows[key] = row
		inserted++
	}
	return inserted, nil
}

// PutRow stores a row directly (for test fixtures).
func (r *RepositoryStub) PutRow(row DateRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[dateutil.Format(row.Date)] = row
}

// Size returns the number of stored rows.
func (r *RepositoryStub) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
