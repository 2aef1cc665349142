package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateContactQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateContactQR("https://wa.me/51999888777?text=Hola")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestGenerateContactQR_EmptyLink(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateContactQR("")
	assert.Error(t, err)
	assert.Nil(t, png)
}

func TestNewQRCodeService_ErrorCorrectionLevels(t *testing.T) {
	// Unknown levels fall back to medium without failing generation.
	for _, level := range []string{"L", "M", "Q", "H", "bogus"} {
		svc := NewQRCodeService(128, level)
		png, err := svc.GenerateContactQR("https://wa.me/51999888777")
		assert.NoError(t, err, "level %s", level)
		assert.NotEmpty(t, png)
	}
}
