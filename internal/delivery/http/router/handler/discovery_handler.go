package handler

import (
	"log/slog"
	"net/http"

	"feria/internal/delivery/http/response"
	"feria/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DiscoveryHandler serves the public, unauthenticated browse surfaces.
type DiscoveryHandler struct {
	uc     usecase.DiscoveryUsecase
	logger *slog.Logger
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler, injected by Fx.
func NewDiscoveryHandler(uc usecase.DiscoveryUsecase, logger *slog.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		uc:     uc,
		logger: logger,
	}
}

// Home returns the curated home page rows.
func (h *DiscoveryHandler) Home(c echo.Context) error {
	output, err := h.uc.Home(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// CategoryPage returns a category's active listings grouped by type.
func (h *DiscoveryHandler) CategoryPage(c echo.Context) error {
	output, err := h.uc.CategoryPage(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Search matches active listings against the q query parameter.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	views, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "")
}

// ListingDetail resolves one listing by id for the public detail page.
func (h *DiscoveryHandler) ListingDetail(c echo.Context) error {
	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.uc.ListingDetail(c.Request().Context(), listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// ContactQR renders the listing's contact link as a PNG QR code.
func (h *DiscoveryHandler) ContactQR(c echo.Context) error {
	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.ContactQR(c.Request().Context(), listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
