// Package cloudinary implements the media pipeline against the Cloudinary API:
// unsigned uploads, URL-based display transformations, and signed deletion.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"feria/config"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/service"
)

const (
	apiBaseURL      = "https://api.cloudinary.com/v1_1"
	deliveryHost    = "res.cloudinary.com"
	uploadSegment   = "/upload/"
	defaultMaxBytes = 5 << 20
)

// Transformation strings inserted after the upload segment of a delivery URL.
var transformations = map[service.SizeProfile]string{
	service.SizeProfileCard:   "w_400,h_400,c_fill,g_auto,q_auto,f_auto",
	service.SizeProfileDetail: "w_1200,h_900,c_limit,q_auto,f_auto",
	service.SizeProfileThumb:  "w_100,h_100,c_fill,q_auto,f_auto",
}

type mediaStorage struct {
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
	rootFolder   string
	maxFileSize  int64
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

// NewMediaStorage creates a Cloudinary-backed MediaStorage.
func NewMediaStorage(cfg *config.Config, logger *slog.Logger) (service.MediaStorage, error) {
	if cfg.Cloudinary == nil {
		return nil, errors.New("cloudinary config is required")
	}
	if cfg.Cloudinary.CloudName == "" || cfg.Cloudinary.UploadPreset == "" {
		return nil, errors.New("cloudinary cloud name and upload preset are required")
	}

	maxFileSize := cfg.Cloudinary.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxBytes
	}

	return &mediaStorage{
		cloudName:    cfg.Cloudinary.CloudName,
		uploadPreset: cfg.Cloudinary.UploadPreset,
		apiKey:       cfg.Cloudinary.APIKey,
		apiSecret:    cfg.Cloudinary.APISecret,
		rootFolder:   cfg.Cloudinary.RootFolder,
		maxFileSize:  maxFileSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a single file to the unsigned upload endpoint. The remote
// folder is keyed by owner and logical folder, e.g. feria/vendors/<id>/products.
func (s *mediaStorage) Upload(ctx context.Context, file io.Reader, filename, folder, ownerID string) (*service.UploadedAsset, error) {
	remoteFolder := strings.Trim(fmt.Sprintf("%s/vendors/%s/%s", s.rootFolder, ownerID, folder), "/")

	body := &strings.Builder{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create multipart file field")
	}
	// LimitReader guards against bodies larger than the configured ceiling;
	// the extra byte detects truncation.
	written, err := io.Copy(part, io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload file")
	}
	if written > s.maxFileSize {
		return nil, domainerrors.ErrMediaFileTooLarge
	}

	if err := writer.WriteField("upload_preset", s.uploadPreset); err != nil {
		return nil, errors.Wrap(err, "failed to write upload preset field")
	}
	if err := writer.WriteField("folder", remoteFolder); err != nil {
		return nil, errors.Wrap(err, "failed to write folder field")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize multipart body")
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", apiBaseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode upload response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || parsed.SecureURL == "" {
		s.logger.Warn("Cloudinary rejected upload",
			slog.Int("status", resp.StatusCode),
			slog.String("message", parsed.Error.Message),
		)

		return nil, domainerrors.ErrMediaUploadFailed.WithDetails(parsed.Error.Message)
	}

	return &service.UploadedAsset{
		URL:     parsed.SecureURL,
		AssetID: parsed.PublicID,
	}, nil
}

// DisplayURL inserts the profile's transformation segment after /upload/ in a
// delivery URL. URLs from foreign hosts are returned unchanged.
func (s *mediaStorage) DisplayURL(remoteURL string, profile service.SizeProfile) string {
	transformation, ok := transformations[profile]
	if !ok {
		return remoteURL
	}

	parsed, err := url.Parse(remoteURL)
	if err != nil || parsed.Host != deliveryHost {
		return remoteURL
	}

	idx := strings.Index(remoteURL, uploadSegment)
	if idx < 0 {
		return remoteURL
	}

	return remoteURL[:idx] + uploadSegment + transformation + "/" + remoteURL[idx+len(uploadSegment):]
}

// AssetID parses the public id out of a delivery URL by stripping the version
// segment and the file extension. Fragile to provider URL shape changes;
// new records store the id returned at upload time instead.
func (s *mediaStorage) AssetID(remoteURL string) string {
	idx := strings.Index(remoteURL, uploadSegment)
	if idx < 0 {
		return ""
	}

	path := remoteURL[idx+len(uploadSegment):]
	segments := strings.Split(path, "/")

	// Drop the leading version segment (v1234567890) when present.
	if len(segments) > 1 && strings.HasPrefix(segments[0], "v") {
		allDigits := len(segments[0]) > 1
		for _, r := range segments[0][1:] {
			if r < '0' || r > '9' {
				allDigits = false

				break
			}
		}
		if allDigits {
			segments = segments[1:]
		}
	}

	publicID := strings.Join(segments, "/")
	if dot := strings.LastIndex(publicID, "."); dot > strings.LastIndex(publicID, "/") {
		publicID = publicID[:dot]
	}

	return publicID
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete destroys an asset through the signed API. The signature covers the
// public id and a timestamp so captured requests expire quickly.
func (s *mediaStorage) Delete(ctx context.Context, assetID string) (bool, error) {
	if s.apiKey == "" || s.apiSecret == "" {
		return false, errors.New("cloudinary api credentials are required for deletion")
	}

	timestamp := fmt.Sprintf("%d", s.now().Unix())
	signature := s.signDestroy(assetID, timestamp)

	form := url.Values{}
	form.Set("public_id", assetID)
	form.Set("api_key", s.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("%s/%s/image/destroy", apiBaseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, errors.Wrap(err, "failed to build destroy request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "destroy request failed")
	}
	defer resp.Body.Close()

	var parsed destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, errors.Wrap(err, "failed to decode destroy response")
	}

	// Cloudinary reports "ok" on success and "not found" for unknown ids.
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 && parsed.Result == "ok"
	if !ok {
		s.logger.Warn("Cloudinary destroy did not succeed",
			slog.String("asset_id", assetID),
			slog.Int("status", resp.StatusCode),
			slog.String("result", parsed.Result),
		)
	}

	return ok, nil
}

// signDestroy computes sha1(public_id=<id>&timestamp=<ts><secret>) per the
// provider's signed request scheme.
func (s *mediaStorage) signDestroy(assetID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", assetID, timestamp, s.apiSecret)
	sum := sha1.Sum([]byte(payload))

	return hex.EncodeToString(sum[:])
}
