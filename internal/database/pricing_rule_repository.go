package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// PricingRuleRepository handles hourly-rate rules
type PricingRuleRepository struct {
	db DB
}

// NewPricingRuleRepository creates a new pricing rule repository
func NewPricingRuleRepository(db DB) *PricingRuleRepository {
	return &PricingRuleRepository{db: db}
}

const pricingRuleColumns = `id, court_id, weekday, start_time, end_time, price_per_hour, valid_from, valid_to, created_at, updated_at`

// ListForCourt returns all pricing rules for a court. Date filtering and
// match ordering happen in the pricing package.
func (r *PricingRuleRepository) ListForCourt(courtID int64) ([]models.PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE court_id = $1 ORDER BY id`

	var rules []models.PricingRule
	if err := r.db.Select(&rules, query, courtID); err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}

	return rules, nil
}

// GetByID retrieves a pricing rule
func (r *PricingRuleRepository) GetByID(id int64) (*models.PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM pricing_rules WHERE id = $1`

	var rule models.PricingRule
	if err := r.db.Get(&rule, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pricing rule %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pricing rule: %w", err)
	}

	return &rule, nil
}

// Create inserts a new pricing rule
func (r *PricingRuleRepository) Create(rule *models.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (court_id, weekday, start_time, end_time, price_per_hour, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, rule.CourtID, rule.Weekday, rule.StartTime, rule.EndTime,
		rule.PricePerHour, rule.ValidFrom, rule.ValidTo).
		Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}

	return nil
}

// Delete removes a pricing rule
func (r *PricingRuleRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM pricing_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pricing rule %d: %w", id, models.ErrNotFound)
	}

	return nil
}
