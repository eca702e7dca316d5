package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateJoinQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.GenerateJoinQR("SHOP1234")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateJoinQR_EmptyShopCode(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.GenerateJoinQR("   ")
	assert.Error(t, err)
}

func TestQRCodeService_ParseJoinQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	data := QRCodeData{
		ShopCode: "SHOP1234",
		Type:     "join",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	shopCode, err := service.ParseJoinQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, "SHOP1234", shopCode)
}

func TestQRCodeService_ParseJoinQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.ParseJoinQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestQRCodeService_ParseJoinQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M")

	data := QRCodeData{
		ShopCode: "SHOP1234",
		Type:     "invalid_type",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseJoinQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseJoinQR_MissingShopCode(t *testing.T) {
	service := NewQRCodeService(256, "M")

	data := QRCodeData{
		ShopCode: "",
		Type:     "join",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseJoinQR(string(jsonData))
	assert.Error(t, err)
}
