package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image is a decoded, embeddable logo.
type Image struct {
	Data   []byte
	Format string // "png", "jpeg", "gif"
	Width  int
	Height int
}

const dataURLPrefix = "data:image/"

// ResolveLogo walks a dot-separated path of mapping keys and returns the
// encoded-image string found there. Both historical shapes are accepted: the
// canonical {dataUrl, width, height} mapping and the legacy bare data-URL
// string. Any missing segment or wrong shape resolves to not-found, never an
// error.
func ResolveLogo(rec map[string]any, dotPath string) (string, bool) {
	var cur any = rec
	for _, seg := range strings.Split(dotPath, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[seg]
		if !ok {
			return "", false
		}
	}
	switch x := cur.(type) {
	case map[string]any:
		if s, ok := x["dataUrl"].(string); ok && s != "" {
			return s, true
		}
		return "", false
	case string:
		if x != "" {
			return x, true
		}
		return "", false
	default:
		return "", false
	}
}

// DecodeLogo validates and decodes a base64 image data URL into raw bytes.
// Malformed or non-image input reports false; embedding call sites treat that
// as "omit the logo, continue rendering text".
func DecodeLogo(dataURL string) (*Image, bool) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, false
	}
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return nil, false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	switch format {
	case "png", "jpeg", "gif":
	default:
		return nil, false
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, false
	}
	return &Image{Data: raw, Format: format, Width: cfg.Width, Height: cfg.Height}, true
}
