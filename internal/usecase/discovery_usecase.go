package usecase

import (
	"context"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// Bounds for the home page curation rows.
const (
	HomePromotedLimit = 5
	HomeFeaturedLimit = 8
	HomeRecentLimit   = 8
)

// ListingView decorates a listing with CDN display variants and the
// outbound contact link, ready for rendering.
type ListingView struct {
	Listing      *entity.Listing
	CardImage    string   // Card variant of the first image.
	ThumbImage   string   // Thumbnail variant of the first image.
	DetailImages []string // Detail variants of every image, in order.
	ContactLink  string   // wa.me deep link with a templated greeting.
}

// HomeOutput is the curated home page: active categories plus three
// independent listing rows.
type HomeOutput struct {
	Categories []*entity.Category
	Promoted   []*ListingView
	Featured   []*ListingView
	Recent     []*ListingView
}

// CategoryPageOutput carries a category's active listings partitioned by type.
type CategoryPageOutput struct {
	Category *entity.Category
	Products []*ListingView
	Services []*ListingView
}

// DiscoveryUsecase composes the public, unauthenticated browse surfaces.
// Only active listings appear on any discovery surface; direct id lookup is
// the one exception.
type DiscoveryUsecase interface {
	// Home returns the curated home page rows.
	Home(ctx context.Context) (*HomeOutput, error)

	// CategoryPage resolves a category by slug and returns its active
	// listings, unbounded, grouped by product/service.
	CategoryPage(ctx context.Context, slug string) (*CategoryPageOutput, error)

	// Search matches active listings by case-insensitive substring against
	// title, description, and tags.
	Search(ctx context.Context, query string) ([]*ListingView, error)

	// ListingDetail resolves a listing by id for the detail page. Inactive
	// listings still resolve here (direct links), discovery never shows them.
	ListingDetail(ctx context.Context, id uuid.UUID) (*ListingView, error)

	// ContactQR renders the listing's contact deep link as a PNG QR code.
	ContactQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
