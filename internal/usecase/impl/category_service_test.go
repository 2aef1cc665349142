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

// categoryServiceFixtures holds all test dependencies for category service tests.
type categoryServiceFixtures struct {
	service      usecase.CategoryUsecase
	txManager    *mockRepo.MockTransactionManager
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)

	service := NewCategoryService(CategoryServiceParams{
		TxManager:    txManager,
		CategoryRepo: categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return categoryServiceFixtures{
		service:      service,
		txManager:    txManager,
		categoryRepo: categoryRepo,
	}
}

func TestCategoryService_ListCategories_ActiveOnlyByDefault(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	categories := []*entity.Category{
		{ID: uuid.New(), Name: "Comida", Slug: "comida", Active: true},
	}

	fx.categoryRepo.EXPECT().FindAll(ctx, true).Return(categories, nil)

	result, err := fx.service.ListCategories(ctx, false)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestCategoryService_ListCategories_IncludeInactive(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()

	fx.categoryRepo.EXPECT().FindAll(ctx, false).Return([]*entity.Category{}, nil)

	result, err := fx.service.ListCategories(ctx, true)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCategoryService_GetCategoryBySlug_NotFound(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()

	fx.categoryRepo.EXPECT().FindBySlug(ctx, "no-existe").Return(nil, repository.ErrCategoryNotFound)

	category, err := fx.service.GetCategoryBySlug(ctx, "no-existe")

	assert.Nil(t, category)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCategoryService_CreateCategory_SlugDerivedFromName(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	input := &usecase.CreateCategoryInput{
		Name:   "Comida Criolla",
		Icon:   "utensils",
		Order:  2,
		Active: true,
	}

	fx.categoryRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Category")).
		Run(func(ctx context.Context, category *entity.Category) {
			category.ID = uuid.New()
			assert.Equal(t, "comida-criolla", category.Slug)
		}).
		Return(nil)

	category, err := fx.service.CreateCategory(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "comida-criolla", category.Slug)
	assert.Equal(t, input.Name, category.Name)
}

func TestCategoryService_CreateCategory_ExplicitSlugWins(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	input := &usecase.CreateCategoryInput{
		Name:   "Comida Criolla",
		Slug:   "criolla",
		Active: true,
	}

	fx.categoryRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Category")).
		Return(nil)

	category, err := fx.service.CreateCategory(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "criolla", category.Slug)
}

func TestCategoryService_CreateCategory_DuplicateSlug(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	input := &usecase.CreateCategoryInput{Name: "Comida", Slug: "comida", Active: true}

	fx.categoryRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Category")).
		Return(repository.ErrSlugTaken)

	category, err := fx.service.CreateCategory(ctx, input)

	assert.Nil(t, category)
	assert.True(t, errors.Is(err, domainerrors.ErrCategorySlugTaken))
}

func TestCategoryService_CreateCategory_EmptySlug(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	input := &usecase.CreateCategoryInput{Name: "!!!", Active: true}

	category, err := fx.service.CreateCategory(ctx, input)

	assert.Nil(t, category)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCategoryService_UpdateCategory_DuplicateSlug(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	input := &usecase.UpdateCategoryInput{
		ID:     uuid.New(),
		Name:   "Comida",
		Slug:   "comida",
		Active: true,
	}

	fx.categoryRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Category")).
		Return(repository.ErrSlugTaken)

	category, err := fx.service.UpdateCategory(ctx, input)

	assert.Nil(t, category)
	assert.True(t, errors.Is(err, domainerrors.ErrCategorySlugTaken))
}

func TestCategoryService_DeleteCategory_Success(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)

			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)
			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)

			mockListingRepo.EXPECT().CountByCategory(ctx, categoryID).Return(int64(0), nil)
			mockCategoryRepo.EXPECT().Delete(ctx, categoryID).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.DeleteCategory(ctx, categoryID)

	assert.NoError(t, err)
}

func TestCategoryService_DeleteCategory_InUse(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockListingRepo := mockRepo.NewMockListingRepository(t)
			mockCategoryRepo := mockRepo.NewMockCategoryRepository(t)

			mockFactory.EXPECT().ListingRepo().Return(mockListingRepo)
			mockFactory.EXPECT().CategoryRepo().Return(mockCategoryRepo)

			mockListingRepo.EXPECT().CountByCategory(ctx, categoryID).Return(int64(3), nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrCategoryInUse)

	err := fx.service.DeleteCategory(ctx, categoryID)

	assert.True(t, errors.Is(err, domainerrors.ErrCategoryInUse))
}
