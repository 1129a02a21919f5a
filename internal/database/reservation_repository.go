package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// ReservationRepository handles reservation rows. The no-overlap
// invariant is enforced here: a gist exclusion constraint on
// (court_id, tstzrange) scoped to active statuses backs up the
// in-transaction re-check, so two concurrent inserts for the same
// window cannot both commit.
type ReservationRepository struct {
	db DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, reference, court_id, user_id, start_at, end_at, status, total_price, cancelled_at, created_at, updated_at`

// GetByID retrieves a reservation by its ID
func (r *ReservationRepository) GetByID(id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res models.Reservation
	if err := r.db.Get(&res, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return &res, nil
}

// ListActiveForCourtBetween returns pending and confirmed reservations
// intersecting [from, to)
func (r *ReservationRepository) ListActiveForCourtBetween(courtID int64, from, to time.Time) ([]models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE court_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_at < $3 AND end_at > $2
		ORDER BY start_at`

	var reservations []models.Reservation
	if err := r.db.Select(&reservations, query, courtID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	return reservations, nil
}

// ListForUser returns a user's reservations, newest first
func (r *ReservationRepository) ListForUser(userID uuid.UUID) ([]models.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_at DESC`

	var reservations []models.Reservation
	if err := r.db.Select(&reservations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user reservations: %w", err)
	}

	return reservations, nil
}

// List returns reservations matching the filter, newest first. The
// complex filter joins through courts.
func (r *ReservationRepository) List(filter models.ReservationFilter) ([]models.Reservation, error) {
	conditions := []string{"1 = 1"}
	args := []interface{}{}
	n := 1

	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, n))
		args = append(args, value)
		n++
	}

	if filter.Status != nil {
		add("r.status = $%d", *filter.Status)
	}
	if filter.CourtID != nil {
		add("r.court_id = $%d", *filter.CourtID)
	}
	if len(filter.ComplexIDs) > 0 {
		add("c.complex_id = ANY($%d)", pq.Array(filter.ComplexIDs))
	}
	if filter.From != nil {
		add("r.end_at > $%d", *filter.From)
	}
	if filter.To != nil {
		add("r.start_at < $%d", *filter.To)
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.reference, r.court_id, r.user_id, r.start_at, r.end_at,
		       r.status, r.total_price, r.cancelled_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN courts c ON c.id = r.court_id
		WHERE %s
		ORDER BY r.start_at DESC`, strings.Join(conditions, " AND "))

	var reservations []models.Reservation
	if err := r.db.Select(&reservations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// Create inserts a reservation, guarded against overlapping active
// reservations. Returns models.ErrOverlap when the window is taken.
func (r *ReservationRepository) Create(res *models.Reservation) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.Get(&conflicts, `
		SELECT COUNT(*)
		FROM reservations
		WHERE court_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_at < $3 AND end_at > $2`,
		res.CourtID, res.StartAt, res.EndAt)
	if err != nil {
		return fmt.Errorf("failed to check for overlaps: %w", err)
	}
	if conflicts > 0 {
		return fmt.Errorf("court %d from %s: %w",
			res.CourtID, res.StartAt.Format(time.RFC3339), models.ErrOverlap)
	}

	err = tx.QueryRow(`
		INSERT INTO reservations (reference, court_id, user_id, start_at, end_at, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		res.Reference, res.CourtID, res.UserID, res.StartAt, res.EndAt,
		res.Status, res.TotalPrice).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isOverlapError(err) {
			return fmt.Errorf("court %d from %s: %w",
				res.CourtID, res.StartAt.Format(time.RFC3339), models.ErrOverlap)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isOverlapError(err) {
			return fmt.Errorf("court %d from %s: %w",
				res.CourtID, res.StartAt.Format(time.RFC3339), models.ErrOverlap)
		}
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

// UpdateWindow moves a reservation to a new window under the same
// overlap guard, ignoring the reservation's own row.
func (r *ReservationRepository) UpdateWindow(id int64, startAt, endAt time.Time, totalPrice float64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.Get(&conflicts, `
		SELECT COUNT(*)
		FROM reservations
		WHERE court_id = (SELECT court_id FROM reservations WHERE id = $1)
		  AND id <> $1
		  AND status IN ('pending', 'confirmed')
		  AND start_at < $3 AND end_at > $2`,
		id, startAt, endAt)
	if err != nil {
		return fmt.Errorf("failed to check for overlaps: %w", err)
	}
	if conflicts > 0 {
		return fmt.Errorf("reservation %d to %s: %w",
			id, startAt.Format(time.RFC3339), models.ErrOverlap)
	}

	result, err := tx.Exec(`
		UPDATE reservations
		SET start_at = $2, end_at = $3, total_price = $4, updated_at = now()
		WHERE id = $1`,
		id, startAt, endAt, totalPrice)
	if err != nil {
		if isOverlapError(err) {
			return fmt.Errorf("reservation %d to %s: %w",
				id, startAt.Format(time.RFC3339), models.ErrOverlap)
		}
		return fmt.Errorf("failed to reschedule reservation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reschedule result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		if isOverlapError(err) {
			return fmt.Errorf("reservation %d to %s: %w",
				id, startAt.Format(time.RFC3339), models.ErrOverlap)
		}
		return fmt.Errorf("failed to commit reschedule: %w", err)
	}

	return nil
}

// UpdateStatus transitions a reservation's status
func (r *ReservationRepository) UpdateStatus(id int64, status models.ReservationStatus, cancelledAt *time.Time) error {
	result, err := r.db.Exec(`
		UPDATE reservations
		SET status = $2, cancelled_at = $3, updated_at = now()
		WHERE id = $1`,
		id, status, cancelledAt)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reservation %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// isOverlapError reports whether err is the exclusion constraint firing
// (23P01) or a serialization failure (40001), both meaning a concurrent
// writer took the window first.
func isOverlapError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23P01" || pqErr.Code == "40001"
}
