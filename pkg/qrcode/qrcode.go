package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRService renders links under a base URL as PNG QR codes.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Link joins path onto the base URL.
func (s *QRService) Link(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// GenerateQRCode returns a PNG of size pixels encoding Link(path).
func (s *QRService) GenerateQRCode(path string, size int) ([]byte, error) {
	png, err := qrcode.Encode(s.Link(path), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
