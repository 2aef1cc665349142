package usecase

import (
	"context"
	"time"
)

// SitemapEntry is one URL in the generated sitemap.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   string
}

// SitemapUsecase enumerates the public URLs for the SEO sitemap: static
// routes plus one entry per active category and active listing.
type SitemapUsecase interface {
	Entries(ctx context.Context) ([]SitemapEntry, error)
}
