package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ProfileRepository reads and updates user profile rows. Profiles are owned
// by the platform; the agent only reads identity fields and adjusts credits.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetDisplayName returns the user's display name, "" when the profile is
// missing or has none.
func (r *ProfileRepository) GetDisplayName(ctx context.Context, userID string) (string, error) {
	var name sql.NullString
	query := `SELECT display_name FROM profiles WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get display name: %w", err)
	}

	return name.String, nil
}

// GetPhone returns the user's phone number, "" when the profile is missing
// or has none.
func (r *ProfileRepository) GetPhone(ctx context.Context, userID string) (string, error) {
	var phone sql.NullString
	query := `SELECT phone FROM profiles WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get phone: %w", err)
	}

	return phone.String, nil
}

// GetCredits returns the user's current credit balance.
func (r *ProfileRepository) GetCredits(ctx context.Context, userID string) (int, error) {
	var credits int
	query := `SELECT credits FROM profiles WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(&credits)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("profile not found: %s", userID)
		}
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}

	return credits, nil
}

// UpdateCredits sets the user's credit balance.
func (r *ProfileRepository) UpdateCredits(ctx context.Context, userID string, credits int) error {
	query := `UPDATE profiles SET credits = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, credits, userID)
	if err != nil {
		return fmt.Errorf("failed to update credits: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}

	return nil
}
