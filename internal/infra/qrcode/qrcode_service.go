package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"nearbasket/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	ShopCode string `json:"shop_code"`
	Type     string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateJoinQR generates a QR code a customer scans to join the shop.
func (s *qrcodeService) GenerateJoinQR(shopCode string) ([]byte, error) {
	shopCode = strings.TrimSpace(shopCode)
	if shopCode == "" {
		return nil, fmt.Errorf("shop code must not be empty")
	}

	data := QRCodeData{
		ShopCode: shopCode,
		Type:     "join",
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseJoinQR parses QR code data and returns the shop code.
func (s *qrcodeService) ParseJoinQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	// Validate type
	if data.Type != "join" {
		return "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	if strings.TrimSpace(data.ShopCode) == "" {
		return "", fmt.Errorf("QR code carries no shop code")
	}

	return data.ShopCode, nil
}
