package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/officio/officio/pkg/dateutil"
	log "github.com/sirupsen/logrus"
)

// Repository is the persistence collaborator of the schedule engine.
// The write pipeline is its only caller for occurrence mutations.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	InsertSchedule(ctx context.Context, s Schedule) (int, error)
	UpdateSchedule(ctx context.Context, s Schedule) error
	GetSchedule(ctx context.Context, id int) (Schedule, error)
	DeleteSchedule(ctx context.Context, id int) error
	DeleteOccurrences(ctx context.Context, scheduleId int) error
	BulkInsertOccurrences(ctx context.Context, occurrences []Occurrence) error
	FindOccurrences(ctx context.Context, userId int, date time.Time) ([]Occurrence, error)
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) InsertSchedule(ctx context.Context, s Schedule) (int, error) {
	query := `INSERT INTO schedule (
                            uid,
                            title,
                            category,
                            contents,
                            is_open,
                            user_id,
                            color,
                            start_date,
                            start_hour,
                            start_minute,
                            end_date,
                            end_hour,
                            end_minute,
                            repeat_type,
                            repeat_anchor,
                            repeat_end
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
						RETURNING id`

	var id int
	err := r.getQueryer().QueryRowContext(ctx, query,
		s.Uid, s.Title, s.Category, s.Contents, s.Open, s.UserId, s.Color,
		dateutil.Format(s.StartDate), s.StartHour, s.StartMinute,
		dateutil.Format(s.EndDate), s.EndHour, s.EndMinute,
		string(s.RepeatType), s.RepeatAnchor, formatRepeatEnd(s),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not insert schedule: %w", err)
		log.Error(err)
		return 0, err
	}

	return id, nil
}

func (r *RepositoryImpl) UpdateSchedule(ctx context.Context, s Schedule) error {
	query := `UPDATE schedule SET
                            title = ?,
                            category = ?,
                            contents = ?,
                            is_open = ?,
                            color = ?,
                            start_date = ?,
                            start_hour = ?,
                            start_minute = ?,
                            end_date = ?,
                            end_hour = ?,
                            end_minute = ?,
                            repeat_type = ?,
                            repeat_anchor = ?,
                            repeat_end = ?
                      WHERE id = ?`

	result, err := r.getQueryer().ExecContext(ctx, query,
		s.Title, s.Category, s.Contents, s.Open, s.Color,
		dateutil.Format(s.StartDate), s.StartHour, s.StartMinute,
		dateutil.Format(s.EndDate), s.EndHour, s.EndMinute,
		string(s.RepeatType), s.RepeatAnchor, formatRepeatEnd(s),
		s.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update schedule: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *RepositoryImpl) GetSchedule(ctx context.Context, id int) (Schedule, error) {
	query := `SELECT id, uid, title, category, contents, is_open, user_id, color,
                     start_date, start_hour, start_minute,
                     end_date, end_hour, end_minute,
                     repeat_type, repeat_anchor, repeat_end
                FROM schedule
               WHERE id = ?`

	var (
		s          Schedule
		repeatType string
		startDate  string
		endDate    string
		repeatEnd  string
	)
	err := r.getQueryer().QueryRowContext(ctx, query, id).Scan(
		&s.Id, &s.Uid, &s.Title, &s.Category, &s.Contents, &s.Open, &s.UserId, &s.Color,
		&startDate, &s.StartHour, &s.StartMinute,
		&endDate, &s.EndHour, &s.EndMinute,
		&repeatType, &s.RepeatAnchor, &repeatEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrScheduleNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query schedule: %w", err)
		log.Error(err)
		return Schedule{}, err
	}

	s.RepeatType = RepeatType(repeatType)
	if s.StartDate, err = dateutil.Parse(startDate); err != nil {
		return Schedule{}, fmt.Errorf("could not parse start date %q: %w", startDate, err)
	}
	if s.EndDate, err = dateutil.Parse(endDate); err != nil {
		return Schedule{}, fmt.Errorf("could not parse end date %q: %w", endDate, err)
	}
	if repeatEnd != "" {
		if s.RepeatEnd, err = dateutil.Parse(repeatEnd); err != nil {
			return Schedule{}, fmt.Errorf("could not parse repeat end %q: %w", repeatEnd, err)
		}
	}
	return s, nil
}

func (r *RepositoryImpl) DeleteSchedule(ctx context.Context, id int) error {
	result, err := r.getQueryer().ExecContext(ctx, `DELETE FROM schedule WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete schedule: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteOccurrences(ctx context.Context, scheduleId int) error {
	_, err := r.getQueryer().ExecContext(ctx, `DELETE FROM schedule_occurrence WHERE schedule_id = ?`, scheduleId)
	if err != nil {
		err := fmt.Errorf("could not delete occurrences: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) BulkInsertOccurrences(ctx context.Context, occurrences []Occurrence) error {
	query := `INSERT INTO schedule_occurrence (
                            schedule_id,
                            occurrence_date,
                            hour,
                            minute,
                            user_id,
                            title,
                            color,
                            seq
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, o := range occurrences {
		_, err = stmt.ExecContext(ctx,
			o.ScheduleId, dateutil.Format(o.Date), o.Hour, o.Minute,
			o.UserId, o.Title, o.Color, o.Seq,
		)
		if err != nil {
			err := fmt.Errorf("could not insert occurrence: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

// FindOccurrences returns the occurrences visible to userId on a date:
// the user's own plus those of schedules flagged open.
func (r *RepositoryImpl) FindOccurrences(ctx context.Context, userId int, date time.Time) ([]Occurrence, error) {
	query := `SELECT o.schedule_id, o.occurrence_date, o.hour, o.minute, o.user_id, o.title, o.color, o.seq
                FROM schedule_occurrence o
                JOIN schedule s ON s.id = o.schedule_id
               WHERE o.occurrence_date = ?
                 AND (o.user_id = ? OR s.is_open)
               ORDER BY o.hour, o.minute, o.seq`

	rows, err := r.getQueryer().QueryContext(ctx, query, dateutil.Format(date), userId)
	if err != nil {
		err := fmt.Errorf("could not query occurrences: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	occurrences := make([]Occurrence, 0, 4)
	for rows.Next() {
		var (
			o       Occurrence
			dateStr string
		)
		if err := rows.Scan(&o.ScheduleId, &dateStr, &o.Hour, &o.Minute, &o.UserId, &o.Title, &o.Color, &o.Seq); err != nil {
			return nil, fmt.Errorf("could not scan occurrence: %w", err)
		}
		if o.Date, err = dateutil.Parse(dateStr); err != nil {
			return nil, fmt.Errorf("could not parse occurrence date %q: %w", dateStr, err)
		}
		occurrences = append(occurrences, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate occurrences: %w", err)
	}
	return occurrences, nil
}

// formatRepeatEnd stores an empty string for non-repeating schedules so
// the column never carries a misleading zero date.
func formatRepeatEnd(s Schedule) string {
	if s.RepeatType == RepeatNone || s.RepeatEnd.IsZero() {
		return ""
	}
	return dateutil.Format(s.RepeatEnd)
}
