// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"feria/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrListingNotFound is returned when a listing is not found.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepository defines the standard operations for listing persistence,
// including every discovery query shape the public pages are composed from.
// All discovery results are ordered created_at descending with an id
// tie-break so pagination and tests are deterministic.
type ListingRepository interface {
	// FindByID retrieves a single listing by ID, regardless of its active
	// flag. Direct links resolve inactive listings; discovery never does.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)

	// FindAll retrieves every listing regardless of its active flag, newest
	// first. Admin inventory view; discovery never uses it.
	FindAll(ctx context.Context) ([]*entity.Listing, error)

	// FindRecent retrieves active listings, newest first.
	// A limit of 0 means unbounded (sitemap, search corpus).
	FindRecent(ctx context.Context, limit int) ([]*entity.Listing, error)

	// FindFeatured retrieves active listings flagged as featured, newest first.
	FindFeatured(ctx context.Context, limit int) ([]*entity.Listing, error)

	// FindPromoted retrieves active listings flagged as promo del día, newest first.
	FindPromoted(ctx context.Context, limit int) ([]*entity.Listing, error)

	// FindByCategory retrieves listings in a category, newest first.
	// When activeOnly is set, hidden listings are excluded.
	FindByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]*entity.Listing, error)

	// FindByMerchant retrieves all of a merchant's listings, newest first,
	// including inactive ones (merchant dashboard view).
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Listing, error)

	// Search retrieves active listings whose title, description, or any tag
	// contains the query, case-insensitively. Newest first.
	Search(ctx context.Context, query string) ([]*entity.Listing, error)

	// CountByCategory returns the number of listings referencing a category,
	// active or not. Used to guard category deletion.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Create persists a new listing.
	Create(ctx context.Context, listing *entity.Listing) error

	// Update modifies an existing listing.
	Update(ctx context.Context, listing *entity.Listing) error

	// Delete removes a listing by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
