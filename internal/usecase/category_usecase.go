package usecase

import (
	"context"

	"github.com/google/uuid"

	"feria/internal/domain/entity"
)

// CreateCategoryInput defines the data for a new category. When Slug is
// empty it is derived from Name.
type CreateCategoryInput struct {
	Name   string
	Slug   string
	Icon   string
	Order  int
	Active bool
}

// UpdateCategoryInput defines the editable fields of a category.
type UpdateCategoryInput struct {
	ID     uuid.UUID
	Name   string
	Slug   string
	Icon   string
	Order  int
	Active bool
}

// CategoryUsecase defines category management and lookup operations.
// Mutations are admin-only; reads serve the public pages.
type CategoryUsecase interface {
	// ListCategories returns categories ordered by the manual sort key.
	// includeInactive is reserved for the admin console.
	ListCategories(ctx context.Context, includeInactive bool) ([]*entity.Category, error)

	// GetCategoryBySlug resolves a category by its URL slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// CreateCategory adds a new category, enforcing slug uniqueness.
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)

	// UpdateCategory edits an existing category, enforcing slug uniqueness.
	UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category. Fails while listings still
	// reference it.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
