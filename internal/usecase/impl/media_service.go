package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/constants"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/domain/service"
	"feria/internal/usecase"
)

// mediaService implements the MediaUsecase interface.
type mediaService struct {
	mediaStorage   service.MediaStorage
	eventPublisher service.EventPublisher
	userRepo       repository.UserRepository
	logger         *slog.Logger
}

// MediaServiceParams holds dependencies for MediaService, injected by Fx.
type MediaServiceParams struct {
	fx.In

	MediaStorage   service.MediaStorage
	EventPublisher service.EventPublisher
	UserRepo       repository.UserRepository
	Logger         *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(params MediaServiceParams) usecase.MediaUsecase {
	return &mediaService{
		mediaStorage:   params.MediaStorage,
		eventPublisher: params.EventPublisher,
		userRepo:       params.UserRepo,
		logger:         params.Logger,
	}
}

func (srv *mediaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UploadImages uploads a batch serially, aborting on the first failure.
// Assets stored before the failure are handed to the cleanup pipeline so an
// aborted batch leaves no orphans behind.
func (srv *mediaService) UploadImages(ctx context.Context, input *usecase.UploadImagesInput) (*usecase.UploadImagesOutput, error) {
	if len(input.Files) < entity.MinListingImages || len(input.Files) > entity.MaxListingImages {
		return nil, domainerrors.ErrListingImageCount
	}

	actor, err := srv.userRepo.FindByID(ctx, input.ActorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load uploading user")
	}
	if !actor.CanPublish() {
		return nil, domainerrors.ErrMerchantInactive
	}

	folder := constants.MediaFolderProducts
	if input.Type == entity.ListingTypeService {
		folder = constants.MediaFolderServices
	}

	images := make([]entity.ListingImage, 0, len(input.Files))
	for i, file := range input.Files {
		asset, err := srv.mediaStorage.Upload(ctx, file.Content, file.Filename, folder, actor.ID.String())
		if err != nil {
			srv.log(ctx).Warn("Upload batch aborted",
				slog.Int("failed_index", i),
				slog.Int("uploaded_count", len(images)),
				slog.Any("error", err),
			)
			srv.reclaimAborted(ctx, images)

			return nil, err
		}

		images = append(images, entity.ListingImage{
			URL:     asset.URL,
			AssetID: asset.AssetID,
		})

		srv.log(ctx).Debug("Image uploaded",
			slog.Int("index", i),
			slog.Int("total", len(input.Files)),
			slog.String("asset_id", asset.AssetID),
		)
	}

	return &usecase.UploadImagesOutput{Images: images}, nil
}

// DeleteAsset destroys one asset through the provider's signed API. Admins
// may target any asset; merchants are confined to assets stored under their
// own vendor folder.
func (srv *mediaService) DeleteAsset(ctx context.Context, input *usecase.DeleteAssetInput) (bool, error) {
	if input.AssetID == "" {
		return false, domainerrors.ErrValidationFailed.WrapMessage("asset id is required")
	}

	actor, err := srv.userRepo.FindByID(ctx, input.ActorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, domainerrors.ErrUserNotFound
		}

		return false, errors.Wrap(err, "failed to load deleting user")
	}

	if !actor.IsAdmin() {
		if !actor.CanPublish() {
			return false, domainerrors.ErrMerchantInactive
		}
		// Uploads nest every asset under vendors/<owner id>, so the id
		// itself carries ownership. The leading slash is prepended so the
		// segment check also holds when no root folder is configured.
		if !strings.Contains("/"+input.AssetID, "/vendors/"+actor.ID.String()+"/") {
			return false, domainerrors.ErrForbidden.WrapMessage("the asset belongs to another merchant")
		}
	}

	ok, err := srv.mediaStorage.Delete(ctx, input.AssetID)
	if err != nil {
		return false, errors.Wrap(err, "failed to delete asset")
	}

	return ok, nil
}

// reclaimAborted publishes a cleanup event for assets stranded by an
// aborted upload batch.
func (srv *mediaService) reclaimAborted(ctx context.Context, images []entity.ListingImage) {
	if len(images) == 0 {
		return
	}

	assetIDs := make([]string, 0, len(images))
	for _, img := range images {
		if img.AssetID != "" {
			assetIDs = append(assetIDs, img.AssetID)
		}
	}

	event := &service.MediaCleanupEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		AssetIDs:  assetIDs,
		Reason:    constants.CleanupReasonAbortedUpload,
	}
	if err := srv.eventPublisher.PublishMediaCleanup(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish cleanup for aborted upload",
			slog.Int("asset_count", len(assetIDs)),
			slog.Any("error", err),
		)
	}
}
