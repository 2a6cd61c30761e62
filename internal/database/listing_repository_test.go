//nolint:testpackage // Testing internal repository requires same package access
package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pazarglobal/agent/internal/domain"
)

func TestListingRepository_Insert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery("INSERT INTO listings").
		WithArgs(
			sqlmock.AnyArg(), // id
			"user-1",
			"iPhone 13 Pro 256GB",
			sqlmock.AnyArg(), // description
			"Elektronik",
			25000.0,
			"used",
			"İstanbul",
			sqlmock.AnyArg(), // images
			domain.ListingStatusActive,
			sqlmock.AnyArg(), // metadata
			0,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	listing := &domain.Listing{
		UserID:      "user-1",
		Title:       "iPhone 13 Pro 256GB",
		Description: "temiz telefon",
		Category:    "Elektronik",
		Price:       25000,
		Condition:   "used",
		Location:    "İstanbul",
		Status:      domain.ListingStatusActive,
		Metadata:    domain.JSONMap{"source": "agent"},
	}

	if err := repo.Insert(context.Background(), listing); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if listing.ID == "" {
		t.Error("Insert() must assign an id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListingRepository_Search_BuildsFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	maxPrice := 50000.0
	rows := sqlmock.NewRows([]string{
		"id", "title", "price", "location", "category", "condition", "images", "created_at",
	}).AddRow("l1", "Araba", 45000.0, "ankara", "Otomotiv", "used", []byte(`["a.jpg"]`), time.Now())

	mock.ExpectQuery("SELECT .+ FROM listings").
		WithArgs(domain.ListingStatusActive, "%araba%", maxPrice, "%ankara%", DefaultSearchLimit).
		WillReturnRows(rows)

	results, err := repo.Search(context.Background(), SearchFilter{
		Keywords: []string{"araba"},
		MaxPrice: &maxPrice,
		Location: "ankara",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "l1" {
		t.Errorf("results = %v", results)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListingRepository_Search_NoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery("SELECT .+ FROM listings").
		WithArgs(domain.ListingStatusActive, DefaultSearchLimit).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "price", "location", "category", "condition", "images", "created_at",
		}))

	results, err := repo.Search(context.Background(), SearchFilter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}
