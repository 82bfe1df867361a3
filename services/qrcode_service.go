// File: services/qrcode_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap the encoder.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GigURL is the public address of a gig on the marketplace site.
func GigURL(applicationURL, gigID string) string {
	return strings.TrimRight(applicationURL, "/") + "/gigs/" + url.PathEscape(gigID)
}

// GenerateGigQRCode renders a PNG QR code pointing at the gig's public page.
func GenerateGigQRCode(applicationURL, gigID string, size int, encode QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if strings.TrimSpace(gigID) == "" {
		return nil, errors.New("gig id is required")
	}
	return encode(GigURL(applicationURL, gigID), qrcode.Medium, size)
}
