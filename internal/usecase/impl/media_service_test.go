package impl

import (
	"context"
	"strings"
	"testing"

	"feria/internal/domain/constants"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
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

// mediaServiceFixtures holds all test dependencies for media service tests.
type mediaServiceFixtures struct {
	service        usecase.MediaUsecase
	mediaStorage   *mockSvc.MockMediaStorage
	eventPublisher *mockSvc.MockEventPublisher
	userRepo       *mockRepo.MockUserRepository
}

func createTestMediaService(t *testing.T) mediaServiceFixtures {
	mediaStorage := mockSvc.NewMockMediaStorage(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	svc := NewMediaService(MediaServiceParams{
		MediaStorage:   mediaStorage,
		EventPublisher: eventPublisher,
		UserRepo:       userRepo,
		Logger:         newDiscardLogger(),
	})

	return mediaServiceFixtures{
		service:        svc,
		mediaStorage:   mediaStorage,
		eventPublisher: eventPublisher,
		userRepo:       userRepo,
	}
}

func TestMediaService_UploadImages_Success(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	input := &usecase.UploadImagesInput{
		ActorID: merchantID,
		Type:    entity.ListingTypeProduct,
		Files: []usecase.FileUpload{
			{Filename: "a.jpg", Content: strings.NewReader("img-a")},
			{Filename: "b.jpg", Content: strings.NewReader("img-b")},
		},
	}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
	fx.mediaStorage.EXPECT().
		Upload(ctx, input.Files[0].Content, "a.jpg", constants.MediaFolderProducts, merchantID.String()).
		Return(&service.UploadedAsset{URL: "https://cdn/a.jpg", AssetID: "asset-a"}, nil)
	fx.mediaStorage.EXPECT().
		Upload(ctx, input.Files[1].Content, "b.jpg", constants.MediaFolderProducts, merchantID.String()).
		Return(&service.UploadedAsset{URL: "https://cdn/b.jpg", AssetID: "asset-b"}, nil)

	output, err := fx.service.UploadImages(ctx, input)

	require.NoError(t, err)
	require.Len(t, output.Images, 2)
	assert.Equal(t, "asset-a", output.Images[0].AssetID)
	assert.Equal(t, "https://cdn/b.jpg", output.Images[1].URL)
}

func TestMediaService_UploadImages_ServiceFolder(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	input := &usecase.UploadImagesInput{
		ActorID: merchantID,
		Type:    entity.ListingTypeService,
		Files: []usecase.FileUpload{
			{Filename: "a.jpg", Content: strings.NewReader("img-a")},
		},
	}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
	fx.mediaStorage.EXPECT().
		Upload(ctx, input.Files[0].Content, "a.jpg", constants.MediaFolderServices, merchantID.String()).
		Return(&service.UploadedAsset{URL: "https://cdn/a.jpg", AssetID: "asset-a"}, nil)

	output, err := fx.service.UploadImages(ctx, input)

	require.NoError(t, err)
	assert.Len(t, output.Images, 1)
}

func TestMediaService_UploadImages_CountBounds(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()

	noFiles := &usecase.UploadImagesInput{ActorID: uuid.New(), Type: entity.ListingTypeProduct}
	output, err := fx.service.UploadImages(ctx, noFiles)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrListingImageCount))

	tooMany := &usecase.UploadImagesInput{ActorID: uuid.New(), Type: entity.ListingTypeProduct}
	for i := 0; i < entity.MaxListingImages+1; i++ {
		tooMany.Files = append(tooMany.Files, usecase.FileUpload{
			Filename: "x.jpg",
			Content:  strings.NewReader("img"),
		})
	}
	output, err = fx.service.UploadImages(ctx, tooMany)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrListingImageCount))
}

func TestMediaService_UploadImages_InactiveMerchantRejected(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: false}

	input := &usecase.UploadImagesInput{
		ActorID: merchantID,
		Type:    entity.ListingTypeProduct,
		Files: []usecase.FileUpload{
			{Filename: "a.jpg", Content: strings.NewReader("img-a")},
		},
	}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	output, err := fx.service.UploadImages(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrMerchantInactive))
}

func TestMediaService_UploadImages_AbortedBatchReclaimsUploaded(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}

	input := &usecase.UploadImagesInput{
		ActorID: merchantID,
		Type:    entity.ListingTypeProduct,
		Files: []usecase.FileUpload{
			{Filename: "a.jpg", Content: strings.NewReader("img-a")},
			{Filename: "b.jpg", Content: strings.NewReader("img-b")},
		},
	}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
	fx.mediaStorage.EXPECT().
		Upload(ctx, input.Files[0].Content, "a.jpg", constants.MediaFolderProducts, merchantID.String()).
		Return(&service.UploadedAsset{URL: "https://cdn/a.jpg", AssetID: "asset-a"}, nil)
	fx.mediaStorage.EXPECT().
		Upload(ctx, input.Files[1].Content, "b.jpg", constants.MediaFolderProducts, merchantID.String()).
		Return(nil, domainerrors.ErrMediaUploadFailed)

	fx.eventPublisher.EXPECT().
		PublishMediaCleanup(ctx, mock.AnythingOfType("*service.MediaCleanupEvent")).
		Run(func(ctx context.Context, event *service.MediaCleanupEvent) {
			assert.Equal(t, []string{"asset-a"}, event.AssetIDs)
			assert.Equal(t, constants.CleanupReasonAbortedUpload, event.Reason)
			assert.Empty(t, event.ListingID)
		}).
		Return(nil)

	output, err := fx.service.UploadImages(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrMediaUploadFailed))
}

func TestMediaService_DeleteAsset_OwnAsset(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}
	assetID := "feria/vendors/" + merchantID.String() + "/products/photo"

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
	fx.mediaStorage.EXPECT().Delete(ctx, assetID).Return(true, nil)

	ok, err := fx.service.DeleteAsset(ctx, &usecase.DeleteAssetInput{
		ActorID: merchantID,
		AssetID: assetID,
	})

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMediaService_DeleteAsset_ForeignAssetForbidden(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}
	foreignAssetID := "feria/vendors/" + uuid.NewString() + "/products/photo"

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	ok, err := fx.service.DeleteAsset(ctx, &usecase.DeleteAssetInput{
		ActorID: merchantID,
		AssetID: foreignAssetID,
	})

	// No Delete expectation: the provider must never be reached.
	assert.False(t, ok)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestMediaService_DeleteAsset_AdminDeletesAnyAsset(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	adminID := uuid.New()
	admin := &entity.User{ID: adminID, Role: entity.RoleAdmin, Active: true}
	assetID := "feria/vendors/" + uuid.NewString() + "/services/photo"

	fx.userRepo.EXPECT().FindByID(ctx, adminID).Return(admin, nil)
	fx.mediaStorage.EXPECT().Delete(ctx, assetID).Return(true, nil)

	ok, err := fx.service.DeleteAsset(ctx, &usecase.DeleteAssetInput{
		ActorID: adminID,
		AssetID: assetID,
	})

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMediaService_DeleteAsset_InactiveMerchantRejected(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: false}

	fx.userRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)

	ok, err := fx.service.DeleteAsset(ctx, &usecase.DeleteAssetInput{
		ActorID: merchantID,
		AssetID: "feria/vendors/" + merchantID.String() + "/products/photo",
	})

	assert.False(t, ok)
	assert.True(t, errors.Is(err, domainerrors.ErrMerchantInactive))
}

func TestMediaService_DeleteAsset_EmptyID(t *testing.T) {
	fx := createTestMediaService(t)

	ctx := context.Background()

	ok, err := fx.service.DeleteAsset(ctx, &usecase.DeleteAssetInput{ActorID: uuid.New()})

	assert.False(t, ok)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
