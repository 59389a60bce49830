package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngDataURL builds a valid encoded logo of the given dimensions.
func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestResolveLogoShapes(t *testing.T) {
	url := pngDataURL(t, 4, 4)

	tests := []struct {
		name  string
		rec   map[string]any
		path  string
		want  string
		found bool
	}{
		{
			name:  "legacy bare string",
			rec:   map[string]any{"letterheadInfo": map[string]any{"logo": url}},
			path:  "letterheadInfo.logo",
			want:  url,
			found: true,
		},
		{
			name: "structured dataUrl",
			rec: map[string]any{"projectInfo": map[string]any{
				"clientLogo": map[string]any{"dataUrl": url, "width": 4, "height": 4},
			}},
			path:  "projectInfo.clientLogo",
			want:  url,
			found: true,
		},
		{
			name: "missing path segment",
			rec:  map[string]any{"projectInfo": map[string]any{}},
			path: "projectInfo.clientLogo",
		},
		{
			name: "wrong shape",
			rec:  map[string]any{"projectInfo": map[string]any{"clientLogo": 42}},
			path: "projectInfo.clientLogo",
		},
		{
			name: "empty string",
			rec:  map[string]any{"letterheadInfo": map[string]any{"logo": ""}},
			path: "letterheadInfo.logo",
		},
		{
			name: "mapping without dataUrl",
			rec:  map[string]any{"letterheadInfo": map[string]any{"logo": map[string]any{"width": 4}}},
			path: "letterheadInfo.logo",
		},
		{
			name: "nil record",
			rec:  nil,
			path: "letterheadInfo.logo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ResolveLogo(tt.rec, tt.path)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLegacyAndStructuredResolveSameImage(t *testing.T) {
	url := pngDataURL(t, 6, 3)
	legacy := map[string]any{"letterheadInfo": map[string]any{"logo": url}}
	structured := map[string]any{"letterheadInfo": map[string]any{
		"logo": map[string]any{"dataUrl": url, "width": 6, "height": 3},
	}}

	rawA, okA := ResolveLogo(legacy, "letterheadInfo.logo")
	rawB, okB := ResolveLogo(structured, "letterheadInfo.logo")
	if !okA || !okB {
		t.Fatalf("resolve: legacy=%v structured=%v", okA, okB)
	}
	imgA, okA := DecodeLogo(rawA)
	imgB, okB := DecodeLogo(rawB)
	if !okA || !okB {
		t.Fatalf("decode: legacy=%v structured=%v", okA, okB)
	}
	if !bytes.Equal(imgA.Data, imgB.Data) {
		t.Error("legacy and structured forms decoded to different bytes")
	}
}

func TestDecodeLogo(t *testing.T) {
	valid := pngDataURL(t, 5, 7)
	img, ok := DecodeLogo(valid)
	if !ok {
		t.Fatal("valid data URL rejected")
	}
	if img.Format != "png" || img.Width != 5 || img.Height != 7 {
		t.Errorf("got format=%s %dx%d, want png 5x7", img.Format, img.Width, img.Height)
	}

	bad := []string{
		"",
		"invalid-base64-data",
		"data:image/png;base64,!!!not-base64!!!",
		"data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")),
		"data:image/png," + base64.StdEncoding.EncodeToString([]byte("no marker")),
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image")),
	}
	for _, s := range bad {
		if _, ok := DecodeLogo(s); ok {
			t.Errorf("accepted malformed input %q", s)
		}
	}
}
