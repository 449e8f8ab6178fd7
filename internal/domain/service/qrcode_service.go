package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateBookShareQR generates a QR code pointing at a book's public share link
	GenerateBookShareQR(bookID uuid.UUID) ([]byte, error)

	// ParseBookShareQR parses QR code data and returns the book ID
	ParseBookShareQR(qrData string) (uuid.UUID, error)
}
