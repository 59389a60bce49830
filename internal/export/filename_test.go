package export

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

func TestFilenamePullsAllDefaults(t *testing.T) {
	cases := []map[string]any{
		nil,
		{},
		{"vfxPulls": map[string]any{}},
		{"vfxPulls": "not a mapping"},
		{"vfxPulls": map[string]any{"showId": "", "plate": "   "}},
	}
	want := "AAA_101_001_001_0010_PL01_v001.####.exr"
	for i, rec := range cases {
		if got := Filename(KindPulls, rec, fixedNow); got != want {
			t.Errorf("case %d: got %q, want %q", i, got, want)
		}
	}
}

func TestFilenameDeliveriesAllDefaults(t *testing.T) {
	want := "AAA_101_001_001_0010_comp_VEND_v001.####.exr"
	if got := Filename(KindDeliveries, map[string]any{}, fixedNow); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilenamePartialFields(t *testing.T) {
	rec := map[string]any{
		"vfxPulls": map[string]any{
			"showId":       "XYZ",
			"episode":      float64(204), // decoded JSON number
			"shotId":       "0450",
			"framePadding": "%05d",
		},
	}
	want := "XYZ_204_001_001_0450_PL01_v001.%05d.exr"
	if got := Filename(KindPulls, rec, fixedNow); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilenameDeliveriesUsesOwnSection(t *testing.T) {
	rec := map[string]any{
		"vfxPulls":      map[string]any{"showId": "PUL"},
		"vfxDeliveries": map[string]any{"showId": "DEL", "task": "matte", "vendorCodeName": "ILM"},
	}
	want := "DEL_101_001_001_0010_matte_ILM_v001.####.exr"
	if got := Filename(KindDeliveries, rec, fixedNow); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilenamePure(t *testing.T) {
	rec := map[string]any{"vfxPulls": map[string]any{"showId": "ABC"}}
	a := Filename(KindPulls, rec, fixedNow)
	b := Filename(KindPulls, rec, fixedNow)
	if a != b {
		t.Errorf("same inputs produced %q then %q", a, b)
	}
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want string
	}{
		{
			name: "default title",
			rec:  map[string]any{},
			want: "VFX_Specification_VFX_Spec_20240102_150405",
		},
		{
			name: "title with spaces underscored",
			rec:  map[string]any{"projectInfo": map[string]any{"projectTitle": "The Big Show"}},
			want: "The_Big_Show_VFX_Spec_20240102_150405",
		},
		{
			name: "blank title falls back",
			rec:  map[string]any{"projectInfo": map[string]any{"projectTitle": "   "}},
			want: "VFX_Specification_VFX_Spec_20240102_150405",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(KindDocument, tt.rec, fixedNow); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilenameTokenCounts(t *testing.T) {
	pulls := Filename(KindPulls, nil, fixedNow)
	if n := len(strings.Split(strings.SplitN(pulls, ".", 2)[0], "_")); n != 7 {
		t.Errorf("pulls stem has %d tokens, want 7: %q", n, pulls)
	}
	dels := Filename(KindDeliveries, nil, fixedNow)
	if n := len(strings.Split(strings.SplitN(dels, ".", 2)[0], "_")); n != 8 {
		t.Errorf("deliveries stem has %d tokens, want 8: %q", n, dels)
	}
}
