package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
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

// listingService implements the ListingUsecase interface.
type listingService struct {
	txManager      repository.TransactionManager
	listingRepo    repository.ListingRepository
	userRepo       repository.UserRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// ListingServiceParams holds dependencies for ListingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	ListingRepo    repository.ListingRepository
	UserRepo       repository.UserRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	return &listingService{
		txManager:      params.TxManager,
		listingRepo:    params.ListingRepo,
		userRepo:       params.UserRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateListing publishes a new listing for an approved, active merchant.
// An admin may create a listing on another merchant's behalf; the owner is
// then the merchant, never the admin.
func (srv *listingService) CreateListing(ctx context.Context, input *usecase.CreateListingInput) (*entity.Listing, error) {
	actor, err := srv.loadActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	owner := actor
	if actor.IsAdmin() && input.MerchantID != uuid.Nil && input.MerchantID != actor.ID {
		owner, err = srv.loadActor(ctx, input.MerchantID)
		if err != nil {
			return nil, err
		}
	}

	if !owner.CanPublish() {
		if owner.Role == entity.RolePending {
			return nil, domainerrors.ErrMerchantNotApproved
		}

		return nil, domainerrors.ErrMerchantInactive
	}

	whatsapp := input.WhatsApp
	if whatsapp == "" {
		// Snapshot the owner's current number; later profile edits do not
		// retroactively change published listings.
		whatsapp = owner.WhatsApp
	}

	listing := &entity.Listing{
		Title:       input.Title,
		Type:        input.Type,
		Description: input.Description,
		Price:       input.Price,
		Images:      toListingImages(input.Images),
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		MerchantID:  owner.ID,
		WhatsApp:    whatsapp,
		Active:      true,
	}

	// Curation flags are admin-curated; merchants cannot self-feature.
	if actor.IsAdmin() {
		listing.Featured = input.Featured
		listing.Promo = input.Promo
	}

	if err := srv.validateListing(listing); err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.CategoryRepo().FindByID(ctx, listing.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound
			}

			return errors.Wrap(err, "failed to verify category")
		}

		return repoFactory.ListingRepo().Create(ctx, listing)
	})
	if err != nil {
		srv.log(ctx).Warn("Listing creation failed", slog.Any("merchantID", owner.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Listing created",
		slog.Any("listingID", listing.ID),
		slog.Any("merchantID", owner.ID),
	)

	return listing, nil
}

// UpdateListing edits an existing listing. Images dropped by the edit are
// handed to the async media cleanup pipeline after the write commits.
func (srv *listingService) UpdateListing(ctx context.Context, input *usecase.UpdateListingInput) (*entity.Listing, error) {
	actor, err := srv.loadActor(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Listing
	var droppedAssets []string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		listing, err := listingRepo.FindByID(ctx, input.ListingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return domainerrors.ErrListingNotFound
			}

			return errors.Wrap(err, "failed to find listing")
		}

		if !listing.OwnedBy(actor.ID) && !actor.IsAdmin() {
			return domainerrors.ErrListingOwnership
		}

		newImages := toListingImages(input.Images)
		droppedAssets = droppedAssetIDs(listing.Images, newImages)

		listing.Title = input.Title
		listing.Type = input.Type
		listing.Description = input.Description
		listing.Price = input.Price
		listing.Images = newImages
		listing.Tags = input.Tags
		listing.Active = input.Active
		if input.WhatsApp != "" {
			listing.WhatsApp = input.WhatsApp
		}
		if input.CategoryID != uuid.Nil && input.CategoryID != listing.CategoryID {
			if _, err := repoFactory.CategoryRepo().FindByID(ctx, input.CategoryID); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return domainerrors.ErrCategoryNotFound
				}

				return errors.Wrap(err, "failed to verify category")
			}
			listing.CategoryID = input.CategoryID
		}
		if actor.IsAdmin() {
			listing.Featured = input.Featured
			listing.Promo = input.Promo
		}

		if err := srv.validateListing(listing); err != nil {
			return err
		}

		if err := listingRepo.Update(ctx, listing); err != nil {
			return errors.Wrap(err, "failed to update listing")
		}

		updated = listing

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Listing update failed", slog.Any("listingID", input.ListingID), slog.Any("error", err))

		return nil, err
	}

	srv.publishCleanup(ctx, updated.ID, droppedAssets, constants.CleanupReasonReplaced)

	return updated, nil
}

// DeleteListing removes a listing and schedules its media for cleanup.
func (srv *listingService) DeleteListing(ctx context.Context, input *usecase.DeleteListingInput) error {
	actor, err := srv.loadActor(ctx, input.ActorID)
	if err != nil {
		return err
	}

	var assetIDs []string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		listing, err := listingRepo.FindByID(ctx, input.ListingID)
		if err != nil {
			if errors.Is(err, repository.ErrListingNotFound) {
				return domainerrors.ErrListingNotFound
			}

			return errors.Wrap(err, "failed to find listing")
		}

		if !listing.OwnedBy(actor.ID) && !actor.IsAdmin() {
			return domainerrors.ErrListingOwnership
		}

		for _, img := range listing.Images {
			if img.AssetID != "" {
				assetIDs = append(assetIDs, img.AssetID)
			}
		}

		return listingRepo.Delete(ctx, input.ListingID)
	})
	if err != nil {
		srv.log(ctx).Warn("Listing deletion failed", slog.Any("listingID", input.ListingID), slog.Any("error", err))

		return err
	}

	srv.publishCleanup(ctx, input.ListingID, assetIDs, constants.CleanupReasonDeleted)
	srv.log(ctx).Info("Listing deleted", slog.Any("listingID", input.ListingID))

	return nil
}

// GetOwnListing loads a listing for its owner's dashboard.
func (srv *listingService) GetOwnListing(ctx context.Context, actorID, listingID uuid.UUID) (*entity.Listing, error) {
	actor, err := srv.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	listing, err := srv.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	if !listing.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, domainerrors.ErrListingOwnership
	}

	return listing, nil
}

// ListOwnListings returns every listing of the acting merchant.
func (srv *listingService) ListOwnListings(ctx context.Context, actorID uuid.UUID) ([]*entity.Listing, error) {
	listings, err := srv.listingRepo.FindByMerchant(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list merchant listings")
	}

	return listings, nil
}

// --- Helpers ---

func (srv *listingService) loadActor(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load acting user")
	}

	return user, nil
}

func (srv *listingService) validateListing(listing *entity.Listing) error {
	if listing.Title == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("title is required")
	}
	if listing.Price == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("price text is required")
	}
	if !listing.Type.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown listing type")
	}
	if listing.CategoryID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WrapMessage("category is required")
	}
	if !listing.ValidateImages() {
		return domainerrors.ErrListingImageCount
	}

	return nil
}

// publishCleanup hands orphaned asset ids to the async worker. Failures are
// logged, never surfaced: the listing write already committed.
func (srv *listingService) publishCleanup(ctx context.Context, listingID uuid.UUID, assetIDs []string, reason string) {
	if len(assetIDs) == 0 {
		return
	}

	event := &service.MediaCleanupEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		ListingID: listingID.String(),
		AssetIDs:  assetIDs,
		Reason:    reason,
	}
	if err := srv.eventPublisher.PublishMediaCleanup(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish media cleanup event",
			slog.Any("listingID", listingID),
			slog.Int("asset_count", len(assetIDs)),
			slog.Any("error", err),
		)
	}
}

func toListingImages(inputs []usecase.ListingImageInput) []entity.ListingImage {
	images := make([]entity.ListingImage, 0, len(inputs))
	for _, img := range inputs {
		images = append(images, entity.ListingImage{
			URL:     img.URL,
			AssetID: img.AssetID,
		})
	}

	return images
}

// droppedAssetIDs returns the asset ids present before the edit but absent after.
func droppedAssetIDs(before, after []entity.ListingImage) []string {
	kept := make(map[string]struct{}, len(after))
	for _, img := range after {
		if img.AssetID != "" {
			kept[img.AssetID] = struct{}{}
		}
	}

	var dropped []string
	for _, img := range before {
		if img.AssetID == "" {
			continue
		}
		if _, ok := kept[img.AssetID]; !ok {
			dropped = append(dropped, img.AssetID)
		}
	}

	return dropped
}
