// Package imaging produces preview thumbnails for uploaded photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

const (
	DefaultMaxSize = 400
	jpegQuality    = 85
)

// Thumbnailer makes a bounded JPEG preview of an image.
type Thumbnailer interface {
	Thumbnail(r io.Reader) ([]byte, error)
}

type ResizeThumbnailer struct {
	maxWidth  uint
	maxHeight uint
}

func NewThumbnailer(maxSize uint) *ResizeThumbnailer {
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	return &ResizeThumbnailer{maxWidth: maxSize, maxHeight: maxSize}
}

// Thumbnail decodes JPEG, PNG or GIF input and returns a JPEG that fits
// the configured box, keeping the aspect ratio. Images already inside the
// box are re-encoded unchanged in size.
func (t *ResizeThumbnailer) Thumbnail(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := resize.Thumbnail(t.maxWidth, t.maxHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
