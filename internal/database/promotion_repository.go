package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// PromotionRepository handles discount promotions
type PromotionRepository struct {
	db DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

const promotionColumns = `id, court_id, complex_id, label, kind, value, valid_from, valid_to, active, created_at, updated_at`

// ListCandidates returns active promotions scoped to the court or its
// complex. Date validity and scope preference are decided by the
// pricing package.
func (r *PromotionRepository) ListCandidates(courtID, complexID int64) ([]models.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE active = TRUE AND (court_id = $1 OR complex_id = $2)
		ORDER BY id`

	var promotions []models.Promotion
	if err := r.db.Select(&promotions, query, courtID, complexID); err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	return promotions, nil
}

// GetByID retrieves a promotion
func (r *PromotionRepository) GetByID(id int64) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	var promo models.Promotion
	if err := r.db.Get(&promo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("promotion %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	return &promo, nil
}

// Create inserts a new promotion
func (r *PromotionRepository) Create(promo *models.Promotion) error {
	query := `
		INSERT INTO promotions (court_id, complex_id, label, kind, value, valid_from, valid_to, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, promo.CourtID, promo.ComplexID, promo.Label, promo.Kind,
		promo.Value, promo.ValidFrom, promo.ValidTo, promo.Active).
		Scan(&promo.ID, &promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

// Delete removes a promotion
func (r *PromotionRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("promotion %d: %w", id, models.ErrNotFound)
	}

	return nil
}
