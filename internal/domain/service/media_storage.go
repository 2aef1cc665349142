package service

import (
	"context"
	"io"
)

// SizeProfile selects one of the fixed display variants derived from an
// uploaded asset's URL.
type SizeProfile string

const (
	// SizeProfileCard is a square fill crop for listing cards.
	SizeProfileCard SizeProfile = "card"
	// SizeProfileDetail is a bounded box for the listing detail view.
	SizeProfileDetail SizeProfile = "detail"
	// SizeProfileThumb is a small square thumbnail.
	SizeProfileThumb SizeProfile = "thumb"
)

// UploadedAsset describes one asset stored on the media CDN.
type UploadedAsset struct {
	URL     string // Stable HTTPS URL of the original asset.
	AssetID string // Provider identifier used for later deletion.
}

// MediaStorage is the media pipeline adapter: it uploads raw image files to
// the hosted CDN, derives display variants, and deletes assets through the
// provider's signed API. Deletion never runs from untrusted clients; the
// signing secret stays server-side.
type MediaStorage interface {
	// Upload transmits a single file and returns the stored asset.
	// The remote path is keyed by owner and logical folder, e.g.
	// vendors/<ownerID>/products.
	Upload(ctx context.Context, file io.Reader, filename, folder, ownerID string) (*UploadedAsset, error)

	// DisplayURL derives a resized/transcoded variant URL for the given
	// profile. Pure string manipulation, no network call; URLs from foreign
	// hosts are returned unchanged.
	DisplayURL(remoteURL string, profile SizeProfile) string

	// AssetID parses the provider asset identifier out of a delivery URL.
	// Kept for migrating legacy records that stored only URLs; new records
	// persist the asset id at upload time.
	AssetID(remoteURL string) string

	// Delete destroys an asset by id using a time-boxed signed request.
	// A non-success provider response is reported as ok=false, not an error;
	// err is reserved for transport failures.
	Delete(ctx context.Context, assetID string) (ok bool, err error)
}
