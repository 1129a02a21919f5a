package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// CourtRepository handles court and complex lookups
type CourtRepository struct {
	db DB
}

// NewCourtRepository creates a new court repository
func NewCourtRepository(db DB) *CourtRepository {
	return &CourtRepository{db: db}
}

// GetByID retrieves a court by its ID
func (r *CourtRepository) GetByID(id int64) (*models.Court, error) {
	query := `
		SELECT id, complex_id, name, sport, covered, active, created_at, updated_at
		FROM courts
		WHERE id = $1`

	var court models.Court
	if err := r.db.Get(&court, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("court %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	return &court, nil
}

// GetComplexByID retrieves a complex by its ID
func (r *CourtRepository) GetComplexByID(id int64) (*models.Complex, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM complexes
		WHERE id = $1`

	var cx models.Complex
	if err := r.db.Get(&cx, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("complex %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get complex: %w", err)
	}

	return &cx, nil
}

// ListComplexIDsForOwner returns the IDs of complexes owned by a user
func (r *CourtRepository) ListComplexIDsForOwner(ownerID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := r.db.Select(&ids, `SELECT id FROM complexes WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned complexes: %w", err)
	}

	return ids, nil
}
