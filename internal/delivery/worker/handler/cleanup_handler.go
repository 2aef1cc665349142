// Package handler processes Pub/Sub push deliveries for the media cleanup
// worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"feria/config"
	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/constants"
	"feria/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// CleanupHandler destroys CDN assets referenced by media cleanup events:
// assets of deleted listings, images dropped by edits, and uploads stranded
// by aborted batches.
type CleanupHandler struct {
	verifyPushAuth bool
	pushAudience   string
	logger         *slog.Logger
	mediaStorage   service.MediaStorage
}

// CleanupHandlerParams holds dependencies for the CleanupHandler
type CleanupHandlerParams struct {
	fx.In

	Config       *config.Config
	Logger       *slog.Logger
	MediaStorage service.MediaStorage
}

// NewCleanupHandler creates a new Pub/Sub push handler for media cleanup
func NewCleanupHandler(params CleanupHandlerParams) *CleanupHandler {
	// Only Google-delivered pushes outside development carry OIDC tokens.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop
	pushAudience := ""
	if params.Config.Worker != nil {
		verifyPushAuth = verifyPushAuth || params.Config.Worker.VerifyPushAuth
		pushAudience = params.Config.Worker.PushAudience
	}

	return &CleanupHandler{
		verifyPushAuth: verifyPushAuth,
		pushAudience:   pushAudience,
		logger:         params.Logger,
		mediaStorage:   params.MediaStorage,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *CleanupHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request(), h.pushAudience); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.MediaCleanupEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse cleanup event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Request id priority: message attributes > event field > context.
	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing media cleanup event",
		slog.String("listing_id", event.ListingID),
		slog.String("reason", event.Reason),
		slog.Int("asset_count", len(event.AssetIDs)),
	)

	if err := h.processCleanup(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process cleanup event",
			slog.String("listing_id", event.ListingID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// 503 makes Pub/Sub redeliver; anything else is acknowledged so a
		// poison message cannot loop forever.
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Cleanup event processed successfully",
		slog.String("listing_id", event.ListingID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *CleanupHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.MediaCleanupEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processCleanup destroys every asset named by the event. Transport failures
// are retryable; a provider "not found" result is not, since the asset is
// already gone or was never stored.
func (h *CleanupHandler) processCleanup(ctx context.Context, event *service.MediaCleanupEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if len(event.AssetIDs) == 0 {
		logger.Info("[Worker] Cleanup event carries no assets")

		return nil
	}

	var failed []string
	for _, assetID := range event.AssetIDs {
		if assetID == "" {
			continue
		}

		ok, err := h.mediaStorage.Delete(ctx, assetID)
		if err != nil {
			failed = append(failed, assetID)
			logger.Error("[Worker] Asset deletion failed",
				slog.String("asset_id", assetID),
				slog.Any("error", err),
			)

			continue
		}
		if !ok {
			// Already deleted, or the id never existed. Acknowledge.
			logger.Warn("[Worker] Provider reported asset not deleted",
				slog.String("asset_id", assetID),
			)

			continue
		}

		logger.Info("[Worker] Asset deleted", slog.String("asset_id", assetID))
	}

	if len(failed) > 0 {
		return newRetryableError(errors.Errorf("failed to delete %d of %d assets", len(failed), len(event.AssetIDs)))
	}

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request, audience string) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The expected audience is the URL of this push endpoint unless pinned
	// by configuration.
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http" // For local development
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// The issuer must be Google for Pub/Sub push tokens.
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
