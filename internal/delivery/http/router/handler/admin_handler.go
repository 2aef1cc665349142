package handler

import (
	"log/slog"
	"net/http"

	"feria/internal/delivery/http/response"
	"feria/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler exposes the admin console operations over merchant accounts.
// The router guards every route here with the admin role.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListPendingMerchants returns accounts awaiting approval, newest first.
func (h *AdminHandler) ListPendingMerchants(c echo.Context) error {
	users, err := h.uc.ListPendingMerchants(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// ListMerchants returns all approved merchant accounts.
func (h *AdminHandler) ListMerchants(c echo.Context) error {
	users, err := h.uc.ListMerchants(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// ListListings returns every listing, active or not, for the admin
// inventory view.
func (h *AdminHandler) ListListings(c echo.Context) error {
	listings, err := h.uc.ListAllListings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "")
}

// ApproveMerchant promotes a pending account to an active merchant.
func (h *AdminHandler) ApproveMerchant(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.ApproveMerchant(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Vendedor aprobado")
}

// SetMerchantActive enables or disables a merchant account.
func (h *AdminHandler) SetMerchantActive(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.SetMerchantActiveInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos inválidos")
	}
	input.UserID = userID

	user, err := h.uc.SetMerchantActive(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Vendedor activado"
	if !input.Active {
		message = "Vendedor desactivado"
	}

	return response.Success(c, http.StatusOK, user, message)
}
