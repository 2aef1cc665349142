package impl

import (
	"context"
	"testing"

	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	mockRepo "feria/internal/mocks/repository"
	"feria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// adminServiceFixtures holds all test dependencies for admin service tests.
type adminServiceFixtures struct {
	service     usecase.AdminUsecase
	txManager   *mockRepo.MockTransactionManager
	userRepo    *mockRepo.MockUserRepository
	listingRepo *mockRepo.MockListingRepository
}

func createTestAdminService(t *testing.T, cascadeDeactivate bool) adminServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	listingRepo := mockRepo.NewMockListingRepository(t)

	cfg := newTestConfig()
	cfg.Approval.CascadeDeactivate = cascadeDeactivate

	service := NewAdminService(AdminServiceParams{
		TxManager:   txManager,
		UserRepo:    userRepo,
		ListingRepo: listingRepo,
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})

	return adminServiceFixtures{
		service:     service,
		txManager:   txManager,
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

func TestAdminService_ListPendingMerchants(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	pending := []*entity.User{
		{ID: uuid.New(), Role: entity.RolePending},
		{ID: uuid.New(), Role: entity.RolePending},
	}

	fx.userRepo.EXPECT().FindByRole(ctx, entity.RolePending).Return(pending, nil)

	users, err := fx.service.ListPendingMerchants(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminService_ListAllListings_IncludesInactive(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	listings := []*entity.Listing{
		{ID: uuid.New(), Title: "Polos estampados", Active: true},
		{ID: uuid.New(), Title: "Catering criollo", Active: false},
	}

	fx.listingRepo.EXPECT().FindAll(ctx).Return(listings, nil)

	result, err := fx.service.ListAllListings(ctx)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.False(t, result[1].Active)
}

func TestAdminService_ListAllListings_RepositoryError(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()

	fx.listingRepo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

	result, err := fx.service.ListAllListings(ctx)

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAdminService_ApproveMerchant_Success(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	userID := uuid.New()
	pendingUser := &entity.User{ID: userID, Role: entity.RolePending, Active: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(pendingUser, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, entity.RoleMerchant, user.Role)
					assert.True(t, user.Active)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	approved, err := fx.service.ApproveMerchant(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleMerchant, approved.Role)
}

func TestAdminService_ApproveMerchant_AlreadyApprovedIsIdempotent(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	userID := uuid.New()
	merchant := &entity.User{ID: userID, Role: entity.RoleMerchant, Active: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			// No Update expected, approval is a no-op here.
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(merchant, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	approved, err := fx.service.ApproveMerchant(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, merchant, approved)
}

func TestAdminService_ApproveMerchant_AdminAccountForbidden(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	userID := uuid.New()
	admin := &entity.User{ID: userID, Role: entity.RoleAdmin, Active: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(admin, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	approved, err := fx.service.ApproveMerchant(ctx, userID)

	assert.Nil(t, approved)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAdminService_ApproveMerchant_NotFound(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrUserNotFound)

	approved, err := fx.service.ApproveMerchant(ctx, userID)

	assert.Nil(t, approved)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAdminService_SetMerchantActive_DeactivateCascadesToListings(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}
	input := &usecase.SetMerchantActiveInput{UserID: merchantID, Active: false}

	listings := []*entity.Listing{
		{ID: uuid.New(), MerchantID: merchantID, Active: true},
		{ID: uuid.New(), MerchantID: merchantID, Active: false},
		{ID: uuid.New(), MerchantID: merchantID, Active: true},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)

			mockUserRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.False(t, user.Active)
				}).
				Return(nil)

			mockListingRepo.EXPECT().FindByMerchant(ctx, merchantID).Return(listings, nil)
			// Only the two listings that were still active get hidden.
			mockListingRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Listing")).
				Run(func(ctx context.Context, listing *entity.Listing) {
					assert.False(t, listing.Active)
				}).
				Return(nil).
				Times(2)

			_ = fn(mockFactory)
		}).
		Return(nil)

	updated, err := fx.service.SetMerchantActive(ctx, input)

	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestAdminService_SetMerchantActive_NoCascadeWhenDisabled(t *testing.T) {
	fx := createTestAdminService(t, false)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: true}
	input := &usecase.SetMerchantActiveInput{UserID: merchantID, Active: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			// ListingRepo is never requested without cascade.
			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	updated, err := fx.service.SetMerchantActive(ctx, input)

	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestAdminService_SetMerchantActive_ReEnableNeverCascades(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	merchantID := uuid.New()
	merchant := &entity.User{ID: merchantID, Role: entity.RoleMerchant, Active: false}
	input := &usecase.SetMerchantActiveInput{UserID: merchantID, Active: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().FindByID(ctx, merchantID).Return(merchant, nil)
			mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	updated, err := fx.service.SetMerchantActive(ctx, input)

	require.NoError(t, err)
	assert.True(t, updated.Active)
}

func TestAdminService_SetMerchantActive_NonMerchantForbidden(t *testing.T) {
	fx := createTestAdminService(t, true)

	ctx := context.Background()
	userID := uuid.New()
	pendingUser := &entity.User{ID: userID, Role: entity.RolePending, Active: true}
	input := &usecase.SetMerchantActiveInput{UserID: userID, Active: false}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByID(ctx, userID).Return(pendingUser, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	updated, err := fx.service.SetMerchantActive(ctx, input)

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
