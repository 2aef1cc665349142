package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/usecase"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCategories returns categories ordered by the manual sort key.
func (srv *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx, !includeInactive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// GetCategoryBySlug resolves a category by its URL slug.
func (srv *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	return category, nil
}

// CreateCategory adds a new category. The slug is derived from the name when
// absent and must be unique.
func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = entity.Slugify(input.Name)
	}
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name produces an empty slug")
	}

	category := &entity.Category{
		Name:   input.Name,
		Slug:   slug,
		Icon:   input.Icon,
		Order:  input.Order,
		Active: input.Active,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, domainerrors.ErrCategorySlugTaken
		}

		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("slug", category.Slug))

	return category, nil
}

// UpdateCategory edits an existing category.
func (srv *categoryService) UpdateCategory(ctx context.Context, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = entity.Slugify(input.Name)
	}

	category := &entity.Category{
		ID:     input.ID,
		Name:   input.Name,
		Slug:   slug,
		Icon:   input.Icon,
		Order:  input.Order,
		Active: input.Active,
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, domainerrors.ErrCategoryNotFound
		case errors.Is(err, repository.ErrSlugTaken):
			return nil, domainerrors.ErrCategorySlugTaken
		}

		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

// DeleteCategory removes a category unless listings still reference it.
// The count check and the delete run in one transaction so a concurrent
// listing creation cannot slip between them.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()
		categoryRepo := repoFactory.CategoryRepo()

		count, err := listingRepo.CountByCategory(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count listings in category")
		}
		if count > 0 {
			return domainerrors.ErrCategoryInUse
		}

		if err := categoryRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrCategoryNotFound
			}

			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Category deletion failed", slog.Any("categoryID", id), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Category deleted", slog.Any("categoryID", id))

	return nil
}
