package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"feria/config"
	"feria/internal/domain/repository"
	"feria/internal/usecase"
)

// sitemapService implements the SitemapUsecase interface.
type sitemapService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	baseURL      string
	logger       *slog.Logger
}

// SitemapServiceParams holds dependencies for SitemapService, injected by Fx.
type SitemapServiceParams struct {
	fx.In

	ListingRepo  repository.ListingRepository
	CategoryRepo repository.CategoryRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSitemapService is the constructor for sitemapService.
func NewSitemapService(params SitemapServiceParams) usecase.SitemapUsecase {
	baseURL := ""
	if params.Config.Sitemap != nil {
		baseURL = strings.TrimRight(params.Config.Sitemap.BaseURL, "/")
	}

	return &sitemapService{
		listingRepo:  params.ListingRepo,
		categoryRepo: params.CategoryRepo,
		baseURL:      baseURL,
		logger:       params.Logger,
	}
}

// Entries enumerates the static routes plus one entry per active category
// and active listing.
func (srv *sitemapService) Entries(ctx context.Context) ([]usecase.SitemapEntry, error) {
	now := time.Now()

	entries := []usecase.SitemapEntry{
		{Loc: srv.baseURL + "/", LastMod: now, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: srv.baseURL + "/buscar", LastMod: now, ChangeFreq: "daily", Priority: "0.7"},
		{Loc: srv.baseURL + "/registro", LastMod: now, ChangeFreq: "monthly", Priority: "0.5"},
	}

	// Store failures degrade to the static entries instead of breaking the
	// whole document; crawlers keep something to index.
	categories, err := srv.categoryRepo.FindAll(ctx, true)
	if err != nil {
		srv.logger.Warn("Sitemap degraded to static entries",
			slog.Any("error", errors.Wrap(err, "failed to load categories")),
		)

		return entries, nil
	}
	for _, category := range categories {
		entries = append(entries, usecase.SitemapEntry{
			Loc:        srv.baseURL + "/categoria/" + category.Slug,
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}

	// Limit 0 walks the whole active corpus.
	listings, err := srv.listingRepo.FindRecent(ctx, 0)
	if err != nil {
		srv.logger.Warn("Sitemap omitted listing entries",
			slog.Any("error", errors.Wrap(err, "failed to load listings")),
		)

		return entries, nil
	}
	for _, listing := range listings {
		lastMod := listing.UpdatedAt
		if lastMod.IsZero() {
			lastMod = now
		}
		entries = append(entries, usecase.SitemapEntry{
			Loc:        srv.baseURL + "/publicacion/" + listing.ID.String(),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	return entries, nil
}
