package impl

import (
	"io"
	"log/slog"

	"feria/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Admin: &config.AdminConfig{
			Email: "admin@feria.pe",
		},
		Approval: &config.ApprovalConfig{
			RequireApproval:   true,
			CascadeDeactivate: true,
		},
		Sitemap: &config.SitemapConfig{
			BaseURL: "https://feria.pe",
		},
	}
}
