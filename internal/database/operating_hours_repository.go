package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// OperatingHoursRepository handles open-window rows
type OperatingHoursRepository struct {
	db DB
}

// NewOperatingHoursRepository creates a new operating hours repository
func NewOperatingHoursRepository(db DB) *OperatingHoursRepository {
	return &OperatingHoursRepository{db: db}
}

const operatingHoursColumns = `id, complex_id, court_id, weekday, open_time, close_time, created_at, updated_at`

// FindForCourt returns the latest court-specific window for a weekday,
// or nil when the court has none of its own.
func (r *OperatingHoursRepository) FindForCourt(courtID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	query := `
		SELECT ` + operatingHoursColumns + `
		FROM operating_hours
		WHERE court_id = $1 AND weekday = $2
		ORDER BY id DESC
		LIMIT 1`

	var hours models.OperatingHours
	if err := r.db.Get(&hours, query, courtID, weekday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find court operating hours: %w", err)
	}

	return &hours, nil
}

// FindForComplex returns the latest complex-wide window for a weekday,
// or nil when the complex has none.
func (r *OperatingHoursRepository) FindForComplex(complexID int64, weekday models.Weekday) (*models.OperatingHours, error) {
	query := `
		SELECT ` + operatingHoursColumns + `
		FROM operating_hours
		WHERE complex_id = $1 AND court_id IS NULL AND weekday = $2
		ORDER BY id DESC
		LIMIT 1`

	var hours models.OperatingHours
	if err := r.db.Get(&hours, query, complexID, weekday); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find complex operating hours: %w", err)
	}

	return &hours, nil
}

// GetByID retrieves an operating hours row
func (r *OperatingHoursRepository) GetByID(id int64) (*models.OperatingHours, error) {
	query := `SELECT ` + operatingHoursColumns + ` FROM operating_hours WHERE id = $1`

	var hours models.OperatingHours
	if err := r.db.Get(&hours, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("operating hours %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get operating hours: %w", err)
	}

	return &hours, nil
}

// Create inserts a new operating hours row
func (r *OperatingHoursRepository) Create(hours *models.OperatingHours) error {
	query := `
		INSERT INTO operating_hours (complex_id, court_id, weekday, open_time, close_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, hours.ComplexID, hours.CourtID, hours.Weekday,
		hours.OpenTime, hours.CloseTime).
		Scan(&hours.ID, &hours.CreatedAt, &hours.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create operating hours: %w", err)
	}

	return nil
}

// Update applies a partial update to an operating hours row
func (r *OperatingHoursRepository) Update(id int64, req *models.UpdateOperatingHoursRequest) error {
	sets := []string{"updated_at = now()"}
	args := []interface{}{}
	n := 1

	if req.Weekday != nil {
		sets = append(sets, fmt.Sprintf("weekday = $%d", n))
		args = append(args, *req.Weekday)
		n++
	}
	if req.OpenTime != nil {
		sets = append(sets, fmt.Sprintf("open_time = $%d", n))
		args = append(args, *req.OpenTime)
		n++
	}
	if req.CloseTime != nil {
		sets = append(sets, fmt.Sprintf("close_time = $%d", n))
		args = append(args, *req.CloseTime)
		n++
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE operating_hours SET %s WHERE id = $%d",
		strings.Join(sets, ", "), n)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update operating hours: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("operating hours %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// Delete removes an operating hours row
func (r *OperatingHoursRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM operating_hours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operating hours: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("operating hours %d: %w", id, models.ErrNotFound)
	}

	return nil
}
