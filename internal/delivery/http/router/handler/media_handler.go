package handler

import (
	"log/slog"
	"net/http"

	"feria/config"
	"feria/internal/delivery/http/response"
	"feria/internal/domain/entity"
	"feria/internal/usecase"
	"feria/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultMaxFileSize bounds a single image upload when no limit is configured.
const defaultMaxFileSize = 5 << 20

// MediaHandler receives multipart image batches and relays signed deletes.
type MediaHandler struct {
	uc          usecase.MediaUsecase
	maxFileSize int64
	logger      *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler, injected by Fx.
func NewMediaHandler(uc usecase.MediaUsecase, cfg *config.Config, logger *slog.Logger) *MediaHandler {
	maxFileSize := int64(defaultMaxFileSize)
	if cfg.Cloudinary != nil && cfg.Cloudinary.MaxFileSize > 0 {
		maxFileSize = cfg.Cloudinary.MaxFileSize
	}

	return &MediaHandler{
		uc:          uc,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadImages accepts a multipart batch under the "images" field. The
// "type" form value selects the products or services folder.
func (h *MediaHandler) UploadImages(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	listingType := entity.ListingType(c.FormValue("type"))
	if !listingType.IsValid() {
		return response.BadRequest(c, "INVALID_LISTING_TYPE", "El tipo debe ser product o service")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "No se pudo leer el formulario de imágenes")
	}

	fileHeaders := form.File["images"]
	input := &usecase.UploadImagesInput{
		ActorID: callerID,
		Type:    listingType,
		Files:   make([]usecase.FileUpload, 0, len(fileHeaders)),
	}

	for _, header := range fileHeaders {
		if header.Size > h.maxFileSize {
			h.logger.Warn("Rejected oversized image upload",
				slog.String("filename", header.Filename),
				slog.String("size", util.FormatBytes(header.Size)),
				slog.String("limit", util.FormatBytes(h.maxFileSize)),
			)

			return response.BadRequest(c, "FILE_TOO_LARGE",
				"La imagen "+header.Filename+" supera el límite de "+util.FormatBytes(h.maxFileSize))
		}

		file, err := header.Open()
		if err != nil {
			return errors.Wrap(err, "failed to open uploaded file")
		}
		defer file.Close()

		input.Files = append(input.Files, usecase.FileUpload{
			Filename: header.Filename,
			Content:  file,
		})
	}

	output, err := h.uc.UploadImages(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Images, "Imágenes subidas")
}

// DeleteAsset destroys one CDN asset through the provider's signed API.
// The asset id travels as a query parameter because provider ids contain
// slashes.
func (h *MediaHandler) DeleteAsset(c echo.Context) error {
	callerID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Sesión no válida")
	}

	input := &usecase.DeleteAssetInput{
		ActorID: callerID,
		AssetID: c.QueryParam("assetId"),
	}

	ok, err := h.uc.DeleteAsset(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return response.NotFound(c, "ASSET_NOT_DELETED", "El proveedor no pudo eliminar el recurso")
	}

	return response.Success(c, http.StatusOK, nil, "Recurso eliminado")
}
