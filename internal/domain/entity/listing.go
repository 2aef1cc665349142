// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ListingType distinguishes product listings from service listings.
type ListingType string

const (
	// ListingTypeProduct is a physical good.
	ListingTypeProduct ListingType = "product"
	// ListingTypeService is an offered service.
	ListingTypeService ListingType = "service"
)

// String returns the string representation of the ListingType.
func (t ListingType) String() string {
	return string(t)
}

// IsValid checks if the ListingType is a valid value.
func (t ListingType) IsValid() bool {
	switch t {
	case ListingTypeProduct, ListingTypeService:
		return true
	default:
		return false
	}
}

const (
	// MinListingImages is the minimum number of images a listing must carry.
	MinListingImages = 1
	// MaxListingImages is the maximum number of images a listing may carry.
	MaxListingImages = 5
)

// ListingImage is one remote image attached to a listing. The CDN asset id
// is stored explicitly so deletion never has to re-derive it from the URL.
type ListingImage struct {
	URL     string `json:"url"`      // Stable HTTPS URL returned by the media CDN.
	AssetID string `json:"asset_id"` // Provider asset identifier used for deletion.
}

// Listing is a merchant's published product or service.
//
// Price is a free-form display string ("Consultar", "Desde S/ 50") and must
// never be parsed as money. MerchantID is immutable after creation except
// when an admin creates the listing on a merchant's behalf. Active=false
// hides a listing from every discovery surface but not from direct fetch.
type Listing struct {
	ID          uuid.UUID      // The Global Unique Identifier (GUID) for the listing.
	Title       string         // Short display title.
	Type        ListingType    // product or service.
	Description string         // Long-form description.
	Price       string         // Opaque display price, not a numeric type.
	Images      []ListingImage // Ordered remote images, between 1 and 5 entries.
	CategoryID  uuid.UUID      // The category this listing is discovered under.
	Tags        []string       // Free-text search tags.
	MerchantID  uuid.UUID      // The owning merchant's user id.
	WhatsApp    string         // Contact number snapshot, independent of the owner's current number.
	Featured    bool           // Curated "destacados" surface flag, admin-managed.
	Promo       bool           // "Promo del día" surface flag, admin-managed.
	Active      bool           // Discovery visibility toggle.
	CreatedAt   time.Time      // Timestamp of when this listing was published.
	UpdatedAt   time.Time      // Timestamp of the last modification.
}

// ValidateImages reports whether the image list satisfies the 1..5 bound.
func (l *Listing) ValidateImages() bool {
	return len(l.Images) >= MinListingImages && len(l.Images) <= MaxListingImages
}

// OwnedBy reports whether the given user id owns this listing.
func (l *Listing) OwnedBy(userID uuid.UUID) bool {
	return l.MerchantID == userID
}
