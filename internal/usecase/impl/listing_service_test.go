package impl

import (
	"context"
	"testing"

	"feria/internal/domain/constants"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/domain/service"
	mockRepo "feria/internal/mocks/repository"
	mockSvc "feria/internal/mocks/service"
	"feria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// listingServiceFixtures holds all test dependencies for listing service tests.
type listingServiceFixtures struct {
	service        usecase.ListingUsecase
	txManager      *mockRepo.MockTransactionManager
	listingRepo    *mockRepo.MockListingRepository
	userRepo       *mockRepo.MockUserRepository
	eventPublisher *mockSvc.MockEventPublisher
}

func createTestListingService(t *testing.T) listingServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	listingRepo := mockRepo.NewMockListingRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)

	svc := NewListingService(ListingServiceParams{
		TxManager:      txManager,
		ListingRepo:    listingRepo,
		UserRepo:       userRepo,
		EventPublisher: eventPublisher,
		Logger:         newDiscardLogger(),
	})

	return listingServiceFixtures{
		service:        svc,
		txManager:      txManager,
		listingRepo:    listingRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

func validCreateInput(actorID, categoryID uuid.UUID) *usecase.CreateListingInput {
	return &usecase.CreateListingInput{
		ActorID:     actorID,
		Title:       "Torta de chocolate",
		Type:        entity.ListingTypeProduct,
		Description: "Torta artesanal por encargo",
		Price:       "Desde S/ 50",
		Images: []usecase.ListingImageInput{
			{URL: "https://res.cloudinary.com/demo/image/upload/v1/feria/vendors/x/products/a.jpg", AssetID: "feria/vendors/x/products/a"},
		},
		CategoryID: categoryID,
		Tags:       []string{"torta", "chocolate"},
	}
}

func TestListingService_CreateListing_Success(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	categoryID := uuid.New()
	merchant := &entity.User{
		ID:       merchantID,
		Role:     entity.RoleMerchant,
		Active:   true,
		WhatsApp: "+51 987 654 321",
	}
	input := validCreateInput(merchantID, categoryID)

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)
			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockCategoryRepo.EXPECT().
				FindByID(ctx, categoryID).
				Return(&entity.Category{ID: categoryID, Active: true}, nil)

			mockListingRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Listing")).
				Run(func(ctx context.Context, listing *entity.Listing) {
					listing.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	listing, err := fx.service.CreateListing(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, merchantID, listing.MerchantID)
	assert.Equal(t, merchant.WhatsApp, listing.WhatsApp)
	assert.True(t, listing.Active)
	assert.False(t, listing.Featured)
	assert.False(t, listing.Promo)
}

func TestListingService_CreateListing_MerchantCannotSelfFeature(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	categoryID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	input := validCreateInput(merchantID, categoryID)
	input.Featured = true
	input.Promo = true

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)
			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockCategoryRepo.EXPECT().
				FindByID(ctx, categoryID).
				Return(&entity.Category{ID: categoryID, Active: true}, nil)
			mockListingRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Listing")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	listing, err := fx.service.CreateListing(ctx, input)

	require.NoError(t, err)
	assert.False(t, listing.Featured)
	assert.False(t, listing.Promo)
}

func TestListingService_CreateListing_AdminOnBehalfOfMerchant(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	adminID := uuid.New()
	merchantID := uuid.New()
	categoryID := uuid.New()
	admin := &entity.User{ID: adminID, Role: entity.RoleAdmin, Active: true}
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true, WhatsApp: "+51 911 111 111"}

	input := validCreateInput(adminID, categoryID)
	input.MerchantID = merchantID
	input.Featured = true

	fx.userRepo.EXPECT().FindByID(ctx, adminID).Return(admin, nil)
	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)
			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockCategoryRepo.EXPECT().
				FindByID(ctx, categoryID).
				Return(&entity.Category{ID: categoryID, Active: true}, nil)
			mockListingRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Listing")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	listing, err := fx.service.CreateListing(ctx, input)

	require.NoError(t, err)
	// Ownership lands on the merchant, not the acting admin.
	assert.Equal(t, merchantID, listing.MerchantID)
	assert.Equal(t, merchant.WhatsApp, listing.WhatsApp)
	assert.True(t, listing.Featured)
}

func TestListingService_CreateListing_PendingMerchantRejected(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	pendingID := uuid.New()
	pending := &entity.User{ID: pendingID, Role: entity.RolePending, Active: true}

	fx.userRepo.EXPECT().FindByID(ctx, pendingID).Return(pending, nil)

	listing, err := fx.service.CreateListing(ctx, validCreateInput(pendingID, uuid.New()))

	assert.Nil(t, listing)
	assert.True(t, errors.Is(err, domainerrors.ErrMerchantNotApproved))
}

func TestListingService_CreateListing_InactiveMerchantRejected(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: false}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	listing, err := fx.service.CreateListing(ctx, validCreateInput(merchantID, uuid.New()))

	assert.Nil(t, listing)
	assert.True(t, errors.Is(err, domainerrors.ErrMerchantInactive))
}

func TestListingService_CreateListing_ImageCountBounds(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	input := validCreateInput(merchantID, uuid.New())
	input.Images = nil

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	listing, err := fx.service.CreateListing(ctx, input)

	assert.Nil(t, listing)
	assert.True(t, errors.Is(err, domainerrors.ErrListingImageCount))
}

func TestListingService_CreateListing_UnknownCategory(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	categoryID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}
	input := validCreateInput(merchantID, categoryID)

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)

			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)

			mockCategoryRepo.EXPECT().
				FindByID(ctx, categoryID).
				Return(nil, repository.ErrCategoryNotFound)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrCategoryNotFound)

	listing, err := fx.service.CreateListing(ctx, input)

	assert.Nil(t, listing)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestListingService_UpdateListing_DroppedImagesScheduledForCleanup(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	listingID := uuid.New()
	categoryID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	existing := &entity.Listing{
		ID:         listingID,
		Title:      "Torta de chocolate",
		Type:       entity.ListingTypeProduct,
		Price:      "Desde S/ 50",
		CategoryID: categoryID,
		MerchantID: merchantID,
		Active:     true,
		Images: []entity.ListingImage{
			{URL: "https://res.cloudinary.com/demo/a.jpg", AssetID: "asset-a"},
			{URL: "https://res.cloudinary.com/demo/b.jpg", AssetID: "asset-b"},
		},
	}

	input := &usecase.UpdateListingInput{
		ActorID:    merchantID,
		ListingID:  listingID,
		Title:      "Torta de chocolate grande",
		Type:       entity.ListingTypeProduct,
		Price:      "Desde S/ 60",
		CategoryID: categoryID,
		Active:     true,
		Images: []usecase.ListingImageInput{
			{URL: "https://res.cloudinary.com/demo/b.jpg", AssetID: "asset-b"},
		},
	}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockListingRepo.EXPECT().FindByID(ctx, listingID).Return(existing, nil)
			mockListingRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Listing")).
				Run(func(ctx context.Context, listing *entity.Listing) {
					assert.Len(t, listing.Images, 1)
					assert.Equal(t, "Torta de chocolate grande", listing.Title)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishMediaCleanup(ctx, mock.AnythingOfType("*service.MediaCleanupEvent")).
		Run(func(ctx context.Context, event *service.MediaCleanupEvent) {
			assert.Equal(t, []string{"asset-a"}, event.AssetIDs)
			assert.Equal(t, constants.CleanupReasonReplaced, event.Reason)
			assert.Equal(t, listingID.String(), event.ListingID)
		}).
		Return(nil)

	updated, err := fx.service.UpdateListing(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Desde S/ 60", updated.Price)
}

func TestListingService_UpdateListing_OwnershipEnforced(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	intruderID := uuid.New()
	listingID := uuid.New()
	intruder := &entity.User{ID: intruderID, Role: entity.RoleMerchant, Active: true}

	existing := &entity.Listing{
		ID:         listingID,
		MerchantID: uuid.New(),
		Images:     []entity.ListingImage{{URL: "u", AssetID: "a"}},
	}

	input := &usecase.UpdateListingInput{
		ActorID:   intruderID,
		ListingID: listingID,
		Title:     "Hijacked",
		Type:      entity.ListingTypeProduct,
		Price:     "S/ 1",
		Images:    []usecase.ListingImageInput{{URL: "u", AssetID: "a"}},
	}

	fx.userRepo.EXPECT().FindByID(ctx, intruderID).Return(intruder, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)
			mockListingRepo.EXPECT().FindByID(ctx, listingID).Return(existing, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrListingOwnership)

	updated, err := fx.service.UpdateListing(ctx, input)

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrListingOwnership))
}

func TestListingService_DeleteListing_PublishesCleanup(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	listingID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	existing := &entity.Listing{
		ID:         listingID,
		MerchantID: merchantID,
		Images: []entity.ListingImage{
			{URL: "u1", AssetID: "asset-1"},
			{URL: "u2", AssetID: ""},
			{URL: "u3", AssetID: "asset-3"},
		},
	}

	input := &usecase.DeleteListingInput{ActorID: merchantID, ListingID: listingID}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockListingRepo.EXPECT().FindByID(ctx, listingID).Return(existing, nil)
			mockListingRepo.EXPECT().Delete(ctx, listingID).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.eventPublisher.EXPECT().
		PublishMediaCleanup(ctx, mock.AnythingOfType("*service.MediaCleanupEvent")).
		Run(func(ctx context.Context, event *service.MediaCleanupEvent) {
			assert.Equal(t, []string{"asset-1", "asset-3"}, event.AssetIDs)
			assert.Equal(t, constants.CleanupReasonDeleted, event.Reason)
		}).
		Return(nil)

	err := fx.service.DeleteListing(ctx, input)

	assert.NoError(t, err)
}

func TestListingService_GetOwnListing_AdminBypassesOwnership(t *testing.T) {
	fx := createTestListingService(t)

	ctx := context.Background()
	adminID := uuid.New()
	listingID := uuid.New()
	admin := &entity.User{ID: adminID, Role: entity.RoleAdmin, Active: true}

	listing := &entity.Listing{ID: listingID, MerchantID: uuid.New()}

	fx.userRepo.EXPECT().FindByID(ctx, adminID).Return(admin, nil)
	fx.listingRepo.EXPECT().FindByID(ctx, listingID).Return(listing, nil)

	result, err := fx.service.GetOwnListing(ctx, adminID, listingID)

	require.NoError(t, err)
	assert.Equal(t, listing, result)
}

func TestListingService_DroppedAssetIDs(t *testing.T) {
	before := []entity.ListingImage{
		{URL: "a", AssetID: "asset-a"},
		{URL: "b", AssetID: "asset-b"},
		{URL: "c", AssetID: ""},
	}
	after := []entity.ListingImage{
		{URL: "b", AssetID: "asset-b"},
		{URL: "d", AssetID: "asset-d"},
	}

	dropped := droppedAssetIDs(before, after)

	assert.Equal(t, []string{"asset-a"}, dropped)
}
