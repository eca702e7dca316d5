package service

// QRCodeService defines the interface for shop-join QR code generation and parsing.
type QRCodeService interface {
	// GenerateJoinQR generates a QR code a customer scans to join the shop.
	GenerateJoinQR(shopCode string) ([]byte, error)

	// ParseJoinQR parses QR code data and returns the shop code.
	ParseJoinQR(qrData string) (string, error)
}
