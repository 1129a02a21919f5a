package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// BlockRepository handles court closure windows
type BlockRepository struct {
	db DB
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// ListForCourtBetween returns blocks intersecting [from, to)
func (r *BlockRepository) ListForCourtBetween(courtID int64, from, to time.Time) ([]models.Block, error) {
	query := `
		SELECT id, court_id, start_at, end_at, reason, created_at, updated_at
		FROM blocks
		WHERE court_id = $1 AND start_at < $3 AND end_at > $2
		ORDER BY start_at`

	var blocks []models.Block
	if err := r.db.Select(&blocks, query, courtID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}

	return blocks, nil
}

// GetByID retrieves a block
func (r *BlockRepository) GetByID(id int64) (*models.Block, error) {
	query := `
		SELECT id, court_id, start_at, end_at, reason, created_at, updated_at
		FROM blocks
		WHERE id = $1`

	var block models.Block
	if err := r.db.Get(&block, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("block %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get block: %w", err)
	}

	return &block, nil
}

// Create inserts a new block
func (r *BlockRepository) Create(block *models.Block) error {
	query := `
		INSERT INTO blocks (court_id, start_at, end_at, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query, block.CourtID, block.StartAt, block.EndAt, block.Reason).
		Scan(&block.ID, &block.CreatedAt, &block.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}

	return nil
}

// Delete removes a block
func (r *BlockRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("block %d: %w", id, models.ErrNotFound)
	}

	return nil
}
