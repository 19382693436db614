// Package qrcode encodes share URLs as PNG QR codes embedded in data URIs.
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// DataURIPrefix prefixes every encoded image.
const DataURIPrefix = "data:image/png;base64,"

// DefaultSize is the rendered image width and height in pixels.
const DefaultSize = 200

// Encoder produces QR images for URLs.
type Encoder interface {
	Encode(url string) (string, error)
}

// PNGEncoder encodes with the highest error-correction level.
type PNGEncoder struct {
	Size int
}

// NewPNGEncoder returns an encoder producing DefaultSize images.
func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{Size: DefaultSize}
}

// Encode returns a data:image/png;base64 URI for url.
func (e *PNGEncoder) Encode(url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("cannot encode empty URL")
	}
	size := e.Size
	if size <= 0 {
		size = DefaultSize
	}

	png, err := goqrcode.Encode(url, goqrcode.Highest, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// ShareURL builds the public URL a QR code points at.
func ShareURL(frontendURL, link string) string {
	return strings.TrimRight(frontendURL, "/") + "/share/" + link
}
