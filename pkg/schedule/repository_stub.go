package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/officio/officio/pkg/dateutil"
)

// RepositoryStub is an in-memory Repository for tests. Transactions
// snapshot the whole state and restore it on error, which is enough to
// assert the write pipeline's atomicity.
type RepositoryStub struct {
	mu          sync.RWMutex
	schedules   map[int]Schedule
	occurrences map[int][]Occurrence // schedule id -> occurrence set
	nextId      int

	transactionErr error
	bulkInsertErr  error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		schedules:   make(map[int]Schedule),
		occurrences: make(map[int][]Occurrence),
		nextId:      1,
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	originalSchedules := make(map[int]Schedule, len(r.schedules))
	for k, v := range r.schedules {
		originalSchedules[k] = v
	}
	originalOccurrences := make(map[int][]Occurrence, len(r.occurrences))
	for k, v := range r.occurrences {
		originalOccurrences[k] = append([]Occurrence(nil), v...)
	}
	originalNextId := r.nextId
	r.mu.Unlock()

	err := fn(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil || r.transactionErr != nil {
		r.schedules = originalSchedules
		r.occurrences = originalOccurrences
		r.nextId = originalNextId
		if err != nil {
			return err
		}
		return r.transactionErr
	}
	return nil
}

func (r *RepositoryStub) InsertSchedule(ctx context.Context, s Schedule) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.Id = r.nextId
	r.nextId++
	r.schedules[s.Id] = s
	return s.Id, nil
}

func (r *RepositoryStub) UpdateSchedule(ctx context.Context, s Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.schedules[s.Id]
	if !ok {
		return ErrScheduleNotFound
	}
	s.Uid = existing.Uid
	s.UserId = existing.UserId
	r.schedules[s.Id] = s
	return nil
}

func (r *RepositoryStub) GetSchedule(ctx context.Context, id int) (Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[id]
	if !ok {
		return Schedule{}, ErrScheduleNotFound
	}
	return s, nil
}

func (r *RepositoryStub) DeleteSchedule(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schedules[id]; !ok {
		return ErrScheduleNotFound
	}
	delete(r.schedules, id)
	delete(r.occurrences, id)
	return nil
}

func (r *RepositoryStub) DeleteOccurrences(ctx context.Context, scheduleId int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.occurrences, scheduleId)
	return nil
}

func (r *RepositoryStub) BulkInsertOccurrences(ctx context.Context, occurrences []Occurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bulkInsertErr != nil {
		return r.bulkInsertErr
	}
	for _, o := range occurrences {
		r.occurrences[o.ScheduleId] = append(r.occurrences[o.ScheduleId], o)
	}
	return nil
}

func (r *RepositoryStub) FindOccurrences(ctx context.Context, userId int, date time.Time) ([]Occurrence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Occurrence, 0, 4)
	for scheduleId, set := range r.occurrences {
		s := r.schedules[scheduleId]
		if s.UserId != userId && !s.Open {
			continue
		}
		for _, o := range set {
			if dateutil.Format(o.Date) == dateutil.Format(date) {
				result = append(result, o)
			}
		}
	}

	// Stable ordering for assertions (hour, minute, then seq).
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			a, b := result[i], result[j]
			if b.Hour < a.Hour || (b.Hour == a.Hour && b.Minute < a.Minute) ||
				(b.Hour == a.Hour && b.Minute == a.Minute && b.Seq < a.Seq) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

// OccurrencesForSchedule returns the stored occurrence set (for assertions).
func (r *RepositoryStub) OccurrencesForSchedule(scheduleId int) []Occurrence {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Occurrence(nil), r.occurrences[scheduleId]...)
}

// SetTransactionError makes the next transaction roll back with err.
func (r *RepositoryStub) SetTransactionError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactionErr = err
}

// SetBulkInsertError makes BulkInsertOccurrences fail with err.
func (r *RepositoryStub) SetBulkInsertError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkInsertErr = err
}
