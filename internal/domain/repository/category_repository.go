// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"feria/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for category persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrSlugTaken is returned when a category slug already exists.
	// Slug uniqueness is enforced at write time; the store never did.
	ErrSlugTaken = errors.New("category slug already taken")
)

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindBySlug retrieves a single category by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// FindAll retrieves every category ordered by the manual sort key.
	// When activeOnly is set, hidden categories are excluded.
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// Create persists a new category. Returns ErrSlugTaken on slug collision.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category. Returns ErrSlugTaken on slug collision.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
