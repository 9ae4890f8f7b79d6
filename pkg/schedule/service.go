package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/officio/officio/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Save persists a schedule and regenerates its occurrence set. A zero Id
// inserts a new schedule; otherwise the existing row is updated. The
// upsert, the occurrence delete and the bulk insert run in one
// transaction: a failed save leaves the previously stored schedule and
// its occurrences untouched.
func (s *Service) Save(ctx context.Context, sch Schedule) (Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	sch.UserId = userId

	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		if sch.Id == 0 {
			sch.Uid = uuid.NewString()
			id, err := repo.InsertSchedule(ctx, sch)
			if err != nil {
				return fmt.Errorf("failed to insert schedule: %w", err)
			}
			sch.Id = id
		} else {
			existing, err := repo.GetSchedule(ctx, sch.Id)
			if err != nil {
				return err
			}
			if existing.UserId != userId {
				return ErrScheduleNotFound
			}
			sch.Uid = existing.Uid
			if err := repo.UpdateSchedule(ctx, sch); err != nil {
				return fmt.Errorf("failed to update schedule: %w", err)
			}
		}

		if err := repo.DeleteOccurrences(ctx, sch.Id); err != nil {
			return fmt.Errorf("failed to delete occurrences: %w", err)
		}

		occurrences, err := Expand(sch)
		if err != nil {
			return err
		}
		if err := repo.BulkInsertOccurrences(ctx, occurrences); err != nil {
			return fmt.Errorf("failed to insert occurrences: %w", err)
		}

		log.Debugf("schedule %d saved with %d occurrences", sch.Id, len(occurrences))
		return nil
	})
	if err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

// Get returns a schedule visible to the current user: their own or one
// flagged open.
func (s *Service) Get(ctx context.Context, id int) (Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}

	sch, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	if sch.UserId != userId && !sch.Open {
		return Schedule{}, ErrScheduleNotFound
	}
	return sch, nil
}

// Delete removes a schedule owned by the current user together with its
// occurrence set.
func (s *Service) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	return s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.GetSchedule(ctx, id)
		if err != nil {
			return err
		}
		if existing.UserId != userId {
			return ErrScheduleNotFound
		}
		if err := repo.DeleteOccurrences(ctx, id); err != nil {
			return fmt.Errorf("failed to delete occurrences: %w", err)
		}
		if err := repo.DeleteSchedule(ctx, id); err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
		return nil
	})
}

// OccurrencesOn returns the occurrences visible to the current user on a
// single date.
func (s *Service) OccurrencesOn(ctx context.Context, date time.Time) ([]Occurrence, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindOccurrences(ctx, userId, date)
}
