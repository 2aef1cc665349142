package usecase

import (
	"context"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// ListingImageInput is one stored CDN asset attached to a listing.
type ListingImageInput struct {
	URL     string
	AssetID string
}

// CreateListingInput defines the data for a new listing. Images must already
// be uploaded; this carries their stored URLs and asset ids.
type CreateListingInput struct {
	ActorID     uuid.UUID // Authenticated caller.
	MerchantID  uuid.UUID // Owner; equals ActorID unless an admin creates on a merchant's behalf.
	Title       string
	Type        entity.ListingType
	Description string
	Price       string
	Images      []ListingImageInput
	CategoryID  uuid.UUID
	Tags        []string
	WhatsApp    string // Contact snapshot; defaults to the owner's number when empty.
	Featured    bool   // Admin-only flag, ignored for merchants.
	Promo       bool   // Admin-only flag, ignored for merchants.
}

// UpdateListingInput defines the editable fields of a listing.
type UpdateListingInput struct {
	ActorID     uuid.UUID
	ListingID   uuid.UUID
	Title       string
	Type        entity.ListingType
	Description string
	Price       string
	Images      []ListingImageInput
	CategoryID  uuid.UUID
	Tags        []string
	WhatsApp    string
	Featured    bool
	Promo       bool
	Active      bool
}

// DeleteListingInput identifies a listing to remove and the acting caller.
type DeleteListingInput struct {
	ActorID   uuid.UUID
	ListingID uuid.UUID
}

// ListingUsecase defines listing lifecycle operations for merchants and
// admins. Ownership is enforced here, not in the delivery layer: a merchant
// may only touch their own listings while an admin may touch any.
type ListingUsecase interface {
	// CreateListing publishes a new listing for an approved, active merchant.
	CreateListing(ctx context.Context, input *CreateListingInput) (*entity.Listing, error)

	// UpdateListing edits an existing listing. Images dropped by the edit are
	// handed to the async media cleanup pipeline.
	UpdateListing(ctx context.Context, input *UpdateListingInput) (*entity.Listing, error)

	// DeleteListing removes a listing and schedules its media for cleanup.
	DeleteListing(ctx context.Context, input *DeleteListingInput) error

	// GetOwnListing loads a listing for its owner's dashboard, regardless of
	// the active flag.
	GetOwnListing(ctx context.Context, actorID, listingID uuid.UUID) (*entity.Listing, error)

	// ListOwnListings returns every listing of the acting merchant,
	// including inactive ones.
	ListOwnListings(ctx context.Context, actorID uuid.UUID) ([]*entity.Listing, error)
}
