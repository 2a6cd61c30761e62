package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pazarglobal/agent/internal/domain"
)

// DraftRepository handles database operations for listing drafts.
type DraftRepository struct {
	db *sqlx.DB
}

// NewDraftRepository creates a new draft repository.
func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

const draftColumns = `id, user_id, state, listing_data, images, vision, created_at, updated_at`

// Create inserts a fresh draft in discovery state and returns it.
func (r *DraftRepository) Create(ctx context.Context, userID string) (*domain.Draft, error) {
	draft := &domain.Draft{
		ID:          uuid.NewString(),
		UserID:      userID,
		State:       domain.DraftStateDiscovery,
		ListingData: domain.JSONMap{},
		Images:      domain.JSONMap{},
		Vision:      domain.JSONMap{},
	}

	query := `
		INSERT INTO listing_drafts (id, user_id, state, listing_data, images, vision)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		draft.ID,
		draft.UserID,
		draft.State,
		draft.ListingData,
		draft.Images,
		draft.Vision,
	).Scan(&draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	return draft, nil
}

// GetByID retrieves a draft by its id. Returns (nil, nil) when absent.
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	var draft domain.Draft
	query := `SELECT ` + draftColumns + ` FROM listing_drafts WHERE id = $1`

	err := r.db.GetContext(ctx, &draft, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	return &draft, nil
}

// GetActive retrieves the user's most recently touched discovery-state draft.
// Cancelled and published drafts never surface here. Returns (nil, nil) when
// the user has no active draft.
func (r *DraftRepository) GetActive(ctx context.Context, userID string) (*domain.Draft, error) {
	var draft domain.Draft
	query := `
		SELECT ` + draftColumns + `
		FROM listing_drafts
		WHERE user_id = $1 AND state = $2
		ORDER BY updated_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &draft, query, userID, domain.DraftStateDiscovery)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active draft: %w", err)
	}

	return &draft, nil
}

// UpdateListingData replaces the draft's listing_data and bumps updated_at.
func (r *DraftRepository) UpdateListingData(ctx context.Context, id string, data domain.JSONMap) (time.Time, error) {
	var updatedAt time.Time
	query := `
		UPDATE listing_drafts
		SET listing_data = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query, data, id).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("draft not found: %s", id)
		}
		return time.Time{}, fmt.Errorf("failed to update listing data: %w", err)
	}

	return updatedAt, nil
}

// UpdateImages replaces the draft's image payload.
func (r *DraftRepository) UpdateImages(ctx context.Context, id string, images domain.JSONMap) error {
	query := `
		UPDATE listing_drafts
		SET images = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, images, id)
	if err != nil {
		return fmt.Errorf("failed to update draft images: %w", err)
	}

	return requireRow(result, id)
}

// UpdateState moves the draft to the given lifecycle state.
func (r *DraftRepository) UpdateState(ctx context.Context, id, state string) error {
	query := `
		UPDATE listing_drafts
		SET state = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, state, id)
	if err != nil {
		return fmt.Errorf("failed to update draft state: %w", err)
	}

	return requireRow(result, id)
}

// CancelActiveByUser soft-cancels every discovery-state draft of the user and
// returns how many were cancelled. Rows are kept for audit; only the state
// changes.
func (r *DraftRepository) CancelActiveByUser(ctx context.Context, userID string) (int64, error) {
	query := `
		UPDATE listing_drafts
		SET state = $1, updated_at = NOW()
		WHERE user_id = $2 AND state = $3
	`

	result, err := r.db.ExecContext(ctx, query, domain.DraftStateCancelled, userID, domain.DraftStateDiscovery)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel drafts: %w", err)
	}

	cancelled, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return cancelled, nil
}

func requireRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("draft not found: %s", id)
	}
	return nil
}
