package impl

import (
	"context"
	"testing"
	"time"

	"feria/internal/domain/entity"
	mockRepo "feria/internal/mocks/repository"
	"feria/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sitemapServiceFixtures holds all test dependencies for sitemap service tests.
type sitemapServiceFixtures struct {
	service      usecase.SitemapUsecase
	listingRepo  *mockRepo.MockListingRepository
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestSitemapService(t *testing.T) sitemapServiceFixtures {
	listingRepo := mockRepo.NewMockListingRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)

	svc := NewSitemapService(SitemapServiceParams{
		ListingRepo:  listingRepo,
		CategoryRepo: categoryRepo,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return sitemapServiceFixtures{
		service:      svc,
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
	}
}

func TestSitemapService_Entries(t *testing.T) {
	fx := createTestSitemapService(t)

	ctx := context.Background()
	categories := []*entity.Category{
		{ID: uuid.New(), Name: "Comida", Slug: "comida", Active: true},
		{ID: uuid.New(), Name: "Tecnología", Slug: "tecnologia", Active: true},
	}
	updatedAt := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	listings := []*entity.Listing{
		{ID: uuid.New(), Active: true, UpdatedAt: updatedAt},
	}

	fx.categoryRepo.EXPECT().FindAll(ctx, true).Return(categories, nil)
	fx.listingRepo.EXPECT().FindRecent(ctx, 0).Return(listings, nil)

	entries, err := fx.service.Entries(ctx)

	require.NoError(t, err)
	// 3 static routes + 2 categories + 1 listing.
	require.Len(t, entries, 6)

	assert.Equal(t, "https://feria.pe/", entries[0].Loc)
	assert.Equal(t, "https://feria.pe/buscar", entries[1].Loc)
	assert.Equal(t, "https://feria.pe/registro", entries[2].Loc)
	assert.Equal(t, "https://feria.pe/categoria/comida", entries[3].Loc)
	assert.Equal(t, "https://feria.pe/categoria/tecnologia", entries[4].Loc)
	assert.Equal(t, "https://feria.pe/publicacion/"+listings[0].ID.String(), entries[5].Loc)
	assert.Equal(t, updatedAt, entries[5].LastMod)
}

func TestSitemapService_Entries_StoreFailureDegradesToStatic(t *testing.T) {
	fx := createTestSitemapService(t)

	ctx := context.Background()

	fx.categoryRepo.EXPECT().FindAll(ctx, true).Return(nil, errors.New("db down"))

	entries, err := fx.service.Entries(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "https://feria.pe/", entries[0].Loc)
}

func TestSitemapService_Entries_ZeroUpdatedAtFallsBackToNow(t *testing.T) {
	fx := createTestSitemapService(t)

	ctx := context.Background()
	listings := []*entity.Listing{{ID: uuid.New(), Active: true}}

	fx.categoryRepo.EXPECT().FindAll(ctx, true).Return([]*entity.Category{}, nil)
	fx.listingRepo.EXPECT().FindRecent(ctx, 0).Return(listings, nil)

	entries, err := fx.service.Entries(ctx)

	require.NoError(t, err)
	last := entries[len(entries)-1]
	assert.WithinDuration(t, time.Now(), last.LastMod, time.Minute)
}
