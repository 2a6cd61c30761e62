package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pazarglobal/agent/internal/domain"
)

// DefaultSearchLimit caps how many listings a search returns.
const DefaultSearchLimit = 6

// ListingRepository handles database operations for published listings.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Insert stores a new listing and fills its id and created_at.
func (r *ListingRepository) Insert(ctx context.Context, listing *domain.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}

	query := `
		INSERT INTO listings (id, user_id, title, description, category, price,
		                      condition, location, images, status, metadata, view_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		listing.ID,
		listing.UserID,
		listing.Title,
		listing.Description,
		listing.Category,
		listing.Price,
		listing.Condition,
		listing.Location,
		listing.Images,
		listing.Status,
		listing.Metadata,
		listing.ViewCount,
	).Scan(&listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	return nil
}

// SearchFilter narrows a keyword search.
type SearchFilter struct {
	Keywords []string
	MinPrice *float64
	MaxPrice *float64
	Location string
	Limit    int
}

// Search returns active listings matching the filter, newest first. Each
// keyword must match the title, description, or stored keyword text.
func (r *ListingRepository) Search(ctx context.Context, filter SearchFilter) ([]domain.ListingSummary, error) {
	query := `
		SELECT id, title, price, location, category, condition, images, created_at
		FROM listings
		WHERE status = $1
	`
	args := []any{domain.ListingStatusActive}
	argIndex := 2

	for _, kw := range filter.Keywords {
		pattern := "%" + kw + "%"
		query += fmt.Sprintf(
			" AND (title ILIKE $%d OR description ILIKE $%d OR metadata->>'keywords_text' ILIKE $%d)",
			argIndex, argIndex, argIndex,
		)
		args = append(args, pattern)
		argIndex++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIndex)
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIndex)
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argIndex)
		args = append(args, "%"+loc+"%")
		argIndex++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argIndex)
	args = append(args, limit)

	var results []domain.ListingSummary
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	return results, nil
}
