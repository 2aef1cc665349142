package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feria/config"
	"feria/internal/domain/constants"
	"feria/internal/domain/service"
	mockSvc "feria/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// cleanupHandlerFixtures holds all test dependencies for cleanup handler tests.
type cleanupHandlerFixtures struct {
	handler      *CleanupHandler
	mediaStorage *mockSvc.MockMediaStorage
}

func createTestCleanupHandler(t *testing.T) cleanupHandlerFixtures {
	mediaStorage := mockSvc.NewMockMediaStorage(t)

	cfg := &config.Config{}
	cfg.Env.Env = constants.EnvDevelop
	cfg.PubSub = &config.PubSubConfig{Provider: constants.PubSubProviderLocal}

	h := NewCleanupHandler(CleanupHandlerParams{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		MediaStorage: mediaStorage,
	})

	return cleanupHandlerFixtures{
		handler:      h,
		mediaStorage: mediaStorage,
	}
}

func pushRequest(t *testing.T, event *service.MediaCleanupEvent) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var envelope PubSubMessage
	envelope.Message.Data = base64.StdEncoding.EncodeToString(payload)
	envelope.Message.MessageID = "msg-1"
	envelope.Message.Attributes = map[string]string{"request_id": "req-1"}
	envelope.Subscription = "projects/demo/subscriptions/media-cleanup"

	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestCleanupHandler_HandlePush_DeletesAllAssets(t *testing.T) {
	fx := createTestCleanupHandler(t)

	event := &service.MediaCleanupEvent{
		ListingID: "listing-1",
		AssetIDs:  []string{"asset-a", "asset-b"},
		Reason:    constants.CleanupReasonDeleted,
	}

	fx.mediaStorage.EXPECT().Delete(mock.Anything, "asset-a").Return(true, nil)
	fx.mediaStorage.EXPECT().Delete(mock.Anything, "asset-b").Return(true, nil)

	c, rec := pushRequest(t, event)

	err := fx.handler.HandlePush(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCleanupHandler_HandlePush_TransportFailureRetries(t *testing.T) {
	fx := createTestCleanupHandler(t)

	event := &service.MediaCleanupEvent{
		AssetIDs: []string{"asset-a"},
		Reason:   constants.CleanupReasonReplaced,
	}

	fx.mediaStorage.EXPECT().Delete(mock.Anything, "asset-a").Return(false, errors.New("connection refused"))

	c, rec := pushRequest(t, event)

	err := fx.handler.HandlePush(c)

	require.NoError(t, err)
	// 503 makes Pub/Sub redeliver the message.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCleanupHandler_HandlePush_AlreadyGoneIsAcknowledged(t *testing.T) {
	fx := createTestCleanupHandler(t)

	event := &service.MediaCleanupEvent{
		AssetIDs: []string{"asset-a"},
		Reason:   constants.CleanupReasonAbortedUpload,
	}

	fx.mediaStorage.EXPECT().Delete(mock.Anything, "asset-a").Return(false, nil)

	c, rec := pushRequest(t, event)

	err := fx.handler.HandlePush(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCleanupHandler_HandlePush_EmptyAssetListIsAcknowledged(t *testing.T) {
	fx := createTestCleanupHandler(t)

	event := &service.MediaCleanupEvent{Reason: constants.CleanupReasonDeleted}

	c, rec := pushRequest(t, event)

	err := fx.handler.HandlePush(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCleanupHandler_HandlePush_MalformedDataRejected(t *testing.T) {
	fx := createTestCleanupHandler(t)

	var envelope PubSubMessage
	envelope.Message.Data = "not-base64!!!"
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err = fx.handler.HandlePush(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
