package handler

import (
	"encoding/xml"
	"log/slog"
	"net/http"

	"feria/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// sitemapURLSet is the root element of the sitemap protocol document.
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapHandler renders the SEO sitemap from the public URL inventory.
type SitemapHandler struct {
	uc     usecase.SitemapUsecase
	logger *slog.Logger
}

// NewSitemapHandler is the constructor for SitemapHandler, injected by Fx.
func NewSitemapHandler(uc usecase.SitemapUsecase, logger *slog.Logger) *SitemapHandler {
	return &SitemapHandler{
		uc:     uc,
		logger: logger,
	}
}

// Sitemap serves /sitemap.xml.
func (h *SitemapHandler) Sitemap(c echo.Context) error {
	entries, err := h.uc.Entries(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(entries)),
	}
	for _, entry := range entries {
		u := sitemapURL{
			Loc:        entry.Loc,
			ChangeFreq: entry.ChangeFreq,
			Priority:   entry.Priority,
		}
		if !entry.LastMod.IsZero() {
			u.LastMod = entry.LastMod.Format("2006-01-02")
		}
		urlSet.URLs = append(urlSet.URLs, u)
	}

	body, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal sitemap")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), body...))
}
