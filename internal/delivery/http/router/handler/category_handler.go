package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"feria/internal/delivery/http/response"
	"feria/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler serves category lookups and the admin-only mutations.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListCategories returns active categories in display order for the
// public navigation.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context(), false)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// AdminListCategories returns the full category set for the admin console,
// inactive ones included when requested.
func (h *CategoryHandler) AdminListCategories(c echo.Context) error {
	includeInactive, _ := strconv.ParseBool(c.QueryParam("includeInactive"))

	categories, err := h.uc.ListCategories(c.Request().Context(), includeInactive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// CreateCategory adds a new category.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var input *usecase.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de categoría inválidos")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Categoría creada")
}

// UpdateCategory edits an existing category.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de categoría inválidos")
	}
	input.ID = categoryID

	category, err := h.uc.UpdateCategory(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "Categoría actualizada")
}

// DeleteCategory removes a category that no listing references.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Categoría eliminada")
}
