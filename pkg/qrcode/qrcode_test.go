package qrcode

import (
	"bytes"
	"testing"
)

func TestLink(t *testing.T) {
	s := NewQRService("https://studio.example.com/")
	if got := s.Link("/shared/albums/a1"); got != "https://studio.example.com/shared/albums/a1" {
		t.Errorf("Link = %q", got)
	}
}

func TestGenerateQRCodeIsPNG(t *testing.T) {
	png, err := NewQRService("https://studio.example.com").GenerateQRCode("shared/albums/a1", 256)
	if err != nil {
		t.Fatalf("GenerateQRCode: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
