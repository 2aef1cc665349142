package handler

import (
	"log/slog"
	"net/http"

	"feria/internal/delivery/http/response"
	"feria/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListingHandler serves the merchant dashboard's listing lifecycle.
// Ownership checks live in the usecase; this layer only identifies the actor.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateListing publishes a new listing. An admin may set MerchantID to
// create on a merchant's behalf; merchants always publish as themselves.
func (h *ListingHandler) CreateListing(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	var input *usecase.CreateListingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de publicación inválidos")
	}
	input.ActorID = callerID
	if input.MerchantID == uuid.Nil {
		input.MerchantID = callerID
	}

	listing, err := h.uc.CreateListing(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, listing, "Publicación creada")
}

// UpdateListing edits an existing listing.
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateListingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de publicación inválidos")
	}
	input.ActorID = callerID
	input.ListingID = listingID

	listing, err := h.uc.UpdateListing(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing, "Publicación actualizada")
}

// DeleteListing removes a listing and schedules its media for cleanup.
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	input := &usecase.DeleteListingInput{ActorID: callerID, ListingID: listingID}
	if err := h.uc.DeleteListing(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Publicación eliminada")
}

// GetOwnListing loads one listing for the owner's dashboard, active or not.
func (h *ListingHandler) GetOwnListing(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	listingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.uc.GetOwnListing(c.Request().Context(), callerID, listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing, "")
}

// ListOwnListings returns every listing of the acting merchant.
func (h *ListingHandler) ListOwnListings(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	listings, err := h.uc.ListOwnListings(c.Request().Context(), callerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "")
}
