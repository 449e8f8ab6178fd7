package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Unknown falls back to medium", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(256, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateBookShareQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	bookID := uuid.New()

	qrBytes, err := service.GenerateBookShareQR(bookID)
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	// PNG magic number.
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_GenerateBookShareQR_DifferentSizes(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		service := NewQRCodeService(size, "M", "")
		bookID := uuid.New()

		qrBytes, err := service.GenerateBookShareQR(bookID)
		require.NoError(t, err)
		assert.NotEmpty(t, qrBytes)
	}
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	bookID := uuid.New()

	data := QRCodeData{
		BookID: bookID.String(),
		Type:   "book_share",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsedID, err := service.ParseBookShareQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, bookID, parsedID)
}

func TestQRCodeService_ShareURLFromBaseURL(t *testing.T) {
	// Trailing slash on the base URL must not double up.
	service := NewQRCodeService(256, "M", "https://books.example.com/")
	concrete, ok := service.(*qrcodeService)
	require.True(t, ok)

	bookID := uuid.New()
	data := concrete.sharePayload(bookID)

	assert.Equal(t, "https://books.example.com/books/"+bookID.String(), data.URL)
	assert.Equal(t, "book_share", data.Type)
}

func TestQRCodeService_NoBaseURLOmitsShareURL(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	concrete, ok := service.(*qrcodeService)
	require.True(t, ok)

	data := concrete.sharePayload(uuid.New())
	assert.Empty(t, data.URL)
}

func TestQRCodeService_ParseBookShareQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	_, err := service.ParseBookShareQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestQRCodeService_ParseBookShareQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		BookID: uuid.New().String(),
		Type:   "invalid_type",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseBookShareQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseBookShareQR_InvalidUUID(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	data := QRCodeData{
		BookID: "not-a-valid-uuid",
		Type:   "book_share",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseBookShareQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse book ID")
}
