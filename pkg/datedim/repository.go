package datedim

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/officio/officio/pkg/dateutil"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetMonth returns the stored rows of one month in date order. Months
	// not (or only partially) covered yield fewer rows, not an error.
	GetMonth(ctx context.Context, year, month int) ([]DateRow, error)
	// MaxDate returns the latest covered date; ok is false on an empty table.
	MaxDate(ctx context.Context) (maxDate time.Time, ok bool, err error)
	// InsertRows stores the given rows, silently skipping days that are
	// already covered. Returns the number of rows actually inserted.
	InsertRows(ctx context.Context, rows []DateRow) (int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetMonth(ctx context.Context, year, month int) ([]DateRow, error) {
	query := `SELECT date, year, month, day, day_of_week, color
                FROM calendar_date
               WHERE year = ? AND month = ?
               ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, year, month)
	if err != nil {
		err := fmt.Errorf("could not query calendar dates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	result := make([]DateRow, 0, 31)
	for rows.Next() {
		var (
			row     DateRow
			dateStr string
		)
		if err := rows.Scan(&dateStr, &row.Year, &row.Month, &row.Day, &row.DayOfWeek, &row.Color); err != nil {
			return nil, fmt.Errorf("could not scan calendar date: %w", err)
		}
		if row.Date, err = dateutil.Parse(dateStr); err != nil {
			return nil, fmt.Errorf("could not parse calendar date %q: %w", dateStr, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate calendar dates: %w", err)
	}
	return result, nil
}

func (r *RepositoryImpl) MaxDate(ctx context.Context) (time.Time, bool, error) {
	var maxDate sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MAX(date) FROM calendar_date`).Scan(&maxDate)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !maxDate.Valid) {
		return time.Time{}, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query max calendar date: %w", err)
		log.Error(err)
		return time.Time{}, false, err
	}

	date, err := dateutil.Parse(maxDate.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("could not parse max calendar date %q: %w", maxDate.String, err)
	}
	return date, true, nil
}

func (r *RepositoryImpl) InsertRows(ctx context.Context, rows []DateRow) (int, error) {
	query := `INSERT INTO calendar_date (date, year, month, day, day_of_week, color)
              VALUES (?, ?, ?, ?, ?, ?)
              ON CONFLICT (date) DO NOTHING`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		result, err := stmt.ExecContext(ctx,
			dateutil.Format(row.Date), row.Year, row.Month, row.Day, row.DayOfWeek, row.Color,
		)
		if err != nil {
			err := fmt.Errorf("could not insert calendar date: %w", err)
			log.Error(err)
			return inserted, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("could not read affected rows: %w", err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}
