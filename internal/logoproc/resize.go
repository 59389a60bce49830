// Package logoproc normalizes uploaded logo images into the structured form
// stored on specification records: a PNG data URL plus declared pixel
// dimensions, scaled to a fixed display height.
package logoproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// TargetHeight is the fixed display height logos are scaled to.
const TargetHeight = 128

// ErrUnsupportedImage indicates the upload was not a decodable raster image.
var ErrUnsupportedImage = errors.New("logoproc: unsupported image")

// Logo is the canonical structured representation stored on records.
type Logo struct {
	DataURL string `json:"dataUrl"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Process decodes raw image bytes (png, jpeg, or gif), scales them to exactly
// TargetHeight preserving aspect ratio, and re-encodes as a PNG data URL.
func Process(data []byte) (*Logo, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}

	nw := int(float64(w) * float64(TargetHeight) / float64(h))
	if nw < 1 {
		nw = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, TargetHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	w, h = nw, TargetHeight

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("logoproc: encode png: %w", err)
	}
	return &Logo{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   w,
		Height:  h,
	}, nil
}
