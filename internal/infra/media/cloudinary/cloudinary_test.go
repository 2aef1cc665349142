package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feria/config"
	"feria/internal/domain/service"
)

func testStorage(t *testing.T) *mediaStorage {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cloudinary = &config.CloudinaryConfig{
		CloudName:    "demo",
		UploadPreset: "unsigned_preset",
		APIKey:       "key",
		APISecret:    "secret",
		RootFolder:   "feria",
	}

	storage, err := NewMediaStorage(cfg, slog.Default())
	require.NoError(t, err)

	return storage.(*mediaStorage)
}

func TestNewMediaStorage_RequiresConfig(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewMediaStorage(cfg, slog.Default())
	assert.Error(t, err)

	cfg.Cloudinary = &config.CloudinaryConfig{CloudName: "demo"}
	_, err = NewMediaStorage(cfg, slog.Default())
	assert.Error(t, err)
}

func TestDisplayURL(t *testing.T) {
	storage := testStorage(t)
	original := "https://res.cloudinary.com/demo/image/upload/v1700000000/feria/vendors/m1/products/foto.jpg"

	tests := []struct {
		name    string
		profile service.SizeProfile
		want    string
	}{
		{
			name:    "card",
			profile: service.SizeProfileCard,
			want:    "https://res.cloudinary.com/demo/image/upload/w_400,h_400,c_fill,g_auto,q_auto,f_auto/v1700000000/feria/vendors/m1/products/foto.jpg",
		},
		{
			name:    "detail",
			profile: service.SizeProfileDetail,
			want:    "https://res.cloudinary.com/demo/image/upload/w_1200,h_900,c_limit,q_auto,f_auto/v1700000000/feria/vendors/m1/products/foto.jpg",
		},
		{
			name:    "thumb",
			profile: service.SizeProfileThumb,
			want:    "https://res.cloudinary.com/demo/image/upload/w_100,h_100,c_fill,q_auto,f_auto/v1700000000/feria/vendors/m1/products/foto.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.DisplayURL(original, tt.profile))
		})
	}
}

func TestDisplayURL_ForeignHostUnchanged(t *testing.T) {
	storage := testStorage(t)

	foreign := "https://example.com/image/upload/foto.jpg"
	assert.Equal(t, foreign, storage.DisplayURL(foreign, service.SizeProfileCard))

	// Unknown profile leaves the URL untouched.
	original := "https://res.cloudinary.com/demo/image/upload/v1/foto.jpg"
	assert.Equal(t, original, storage.DisplayURL(original, service.SizeProfile("poster")))
}

func TestAssetID(t *testing.T) {
	storage := testStorage(t)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned nested path",
			url:  "https://res.cloudinary.com/demo/image/upload/v1700000000/feria/vendors/m1/products/foto.jpg",
			want: "feria/vendors/m1/products/foto",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/feria/foto.png",
			want: "feria/foto",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/feria/foto",
			want: "feria/foto",
		},
		{
			name: "not a delivery url",
			url:  "https://example.com/foto.jpg",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.AssetID(tt.url))
		})
	}
}

func TestSignDestroy(t *testing.T) {
	storage := testStorage(t)
	storage.now = func() time.Time { return time.Unix(1700000000, 0) }

	got := storage.signDestroy("feria/vendors/m1/products/foto", "1700000000")

	sum := sha1.Sum([]byte("public_id=feria/vendors/m1/products/foto&timestamp=1700000000secret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}
