package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"storybook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData is the payload encoded into a share QR code. URL is filled
// when a public base URL is configured, so generic scanner apps can open
// the book directly.
type QRCodeData struct {
	BookID string `json:"book_id"`
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
}

const shareType = "book_share"

// NewQRCodeService builds a QR code service. Unknown correction levels
// fall back to medium.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
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
		baseURL:              baseURL,
	}
}

func (s *qrcodeService) sharePayload(bookID uuid.UUID) QRCodeData {
	data := QRCodeData{
		BookID: bookID.String(),
		Type:   shareType,
	}
	if s.baseURL != "" {
		data.URL = strings.TrimRight(s.baseURL, "/") + "/books/" + bookID.String()
	}

	return data
}

// GenerateBookShareQR encodes a share payload for the given book as a PNG.
func (s *qrcodeService) GenerateBookShareQR(bookID uuid.UUID) ([]byte, error) {
	jsonData, err := json.Marshal(s.sharePayload(bookID))
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

// ParseBookShareQR decodes a share payload and returns the book ID.
func (s *qrcodeService) ParseBookShareQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != shareType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	bookID, err := uuid.Parse(data.BookID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse book ID: %w", err)
	}

	return bookID, nil
}
