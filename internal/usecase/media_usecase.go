package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// FileUpload is one raw image file in an upload batch.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// UploadImagesInput carries a serial upload batch for a listing draft.
type UploadImagesInput struct {
	ActorID uuid.UUID
	Type    entity.ListingType // Chooses the products or services folder.
	Files   []FileUpload
}

// UploadImagesOutput returns the stored assets in upload order.
type UploadImagesOutput struct {
	Images []entity.ListingImage
}

// DeleteAssetInput identifies one CDN asset for the signed delete relay.
// ActorID is the authenticated caller; merchants may only delete assets
// stored under their own vendor folder.
type DeleteAssetInput struct {
	ActorID uuid.UUID
	AssetID string
}

// MediaUsecase fronts the media pipeline: batch uploads for listing drafts
// and the server-side signed delete relay.
type MediaUsecase interface {
	// UploadImages uploads the batch serially. The first failure aborts the
	// rest and hands any already-stored assets to the cleanup pipeline, so
	// no orphans are left behind.
	UploadImages(ctx context.Context, input *UploadImagesInput) (*UploadImagesOutput, error)

	// DeleteAsset destroys one asset through the provider's signed API.
	// Admins may delete any asset; merchants only their own. Returns
	// ok=false when the provider reports a non-success result.
	DeleteAsset(ctx context.Context, input *DeleteAssetInput) (bool, error)
}
