package domain

import "time"

// Listing statuses.
const (
	ListingStatusActive = "active"
)

// Listing is the immutable record created when a draft is published.
type Listing struct {
	ID          string         `db:"id"          json:"id"`
	UserID      string         `db:"user_id"     json:"user_id"`
	Title       string         `db:"title"       json:"title"`
	Description string         `db:"description" json:"description"`
	Category    string         `db:"category"    json:"category"`
	Price       float64        `db:"price"       json:"price"`
	Condition   string         `db:"condition"   json:"condition"`
	Location    string         `db:"location"    json:"location"`
	Images      StringSlice    `db:"images"      json:"images"`
	Status      string         `db:"status"      json:"status"`
	Metadata    JSONMap        `db:"metadata"    json:"metadata"`
	ViewCount   int            `db:"view_count"  json:"view_count"`
	CreatedAt   time.Time      `db:"created_at"  json:"created_at"`
}

// ListingSummary is the projection returned by search.
type ListingSummary struct {
	ID        string      `db:"id"         json:"id"`
	Title     string      `db:"title"      json:"title"`
	Price     float64     `db:"price"      json:"price"`
	Location  string      `db:"location"   json:"location"`
	Category  string      `db:"category"   json:"category"`
	Condition string      `db:"condition"  json:"condition"`
	Images    StringSlice `db:"images"     json:"images"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
