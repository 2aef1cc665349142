package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateContactQR renders the given contact deep link as a PNG QR code.
	GenerateContactQR(link string) ([]byte, error)
}
