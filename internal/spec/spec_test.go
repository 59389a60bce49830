package spec

import (
	"testing"
	"time"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestIsPresent(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"whitespace string", "   \t", false},
		{"string", "x", true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"empty typed slice", []map[string]any{}, false},
		{"typed slice", []map[string]any{{}}, true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"k": "v"}, true},
		{"zero number", float64(0), true},
		{"number", float64(24), true},
		{"false", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPresent(tt.v); got != tt.want {
				t.Errorf("IsPresent(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestNewSeedsDefaultCamera(t *testing.T) {
	s := New(Update{}, now)
	if s.ID == "" {
		t.Error("id not assigned")
	}
	if len(s.CameraFormats) != 1 {
		t.Fatalf("expected 1 seeded camera format, got %d", len(s.CameraFormats))
	}
	if got := s.CameraFormats[0]["cameraId"]; got != "Camera A" {
		t.Errorf("seeded cameraId = %v", got)
	}
	if !s.CreatedAt.Equal(now) || !s.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v", s.CreatedAt, s.UpdatedAt)
	}
}

func TestNewKeepsSubmittedCameras(t *testing.T) {
	cams := []map[string]any{{"cameraId": "B-Cam"}}
	s := New(Update{CameraFormats: cams}, now)
	if len(s.CameraFormats) != 1 || s.CameraFormats[0]["cameraId"] != "B-Cam" {
		t.Errorf("submitted cameras replaced: %v", s.CameraFormats)
	}
}

func TestApplyShallowMerge(t *testing.T) {
	s := New(Update{
		Name:        strPtr("v1"),
		ProjectInfo: map[string]any{"projectTitle": "Show"},
		VFXPulls:    map[string]any{"showId": "ABC"},
	}, now)

	later := now.Add(time.Hour)
	s.Apply(Update{
		ProjectInfo: map[string]any{"director": "Someone"},
	}, later)

	// Submitted sections replace whole; omitted sections are untouched.
	if _, ok := s.ProjectInfo["projectTitle"]; ok {
		t.Error("projectInfo was merged key-wise, want whole-section replace")
	}
	if s.ProjectInfo["director"] != "Someone" {
		t.Error("submitted projectInfo lost")
	}
	if s.VFXPulls["showId"] != "ABC" {
		t.Error("omitted vfxPulls modified")
	}
	if s.Name != "v1" {
		t.Error("omitted name modified")
	}
	if !s.UpdatedAt.Equal(later) {
		t.Errorf("updatedAt = %v, want %v", s.UpdatedAt, later)
	}
	if !s.CreatedAt.Equal(now) {
		t.Error("createdAt must not change on update")
	}
}

func TestRecordFlattens(t *testing.T) {
	s := New(Update{
		LetterheadInfo: map[string]any{"userCompanyName": "Co"},
		VFXPulls:       map[string]any{"showId": "ABC"},
	}, now)

	rec := s.Record()
	if rec["letterheadInfo"].(map[string]any)["userCompanyName"] != "Co" {
		t.Error("letterheadInfo missing")
	}
	if _, ok := rec["vfxDeliveries"]; ok {
		t.Error("unset section present in record")
	}
	cams, ok := rec["cameraFormats"].([]any)
	if !ok || len(cams) != 1 {
		t.Errorf("cameraFormats = %#v", rec["cameraFormats"])
	}
	if _, ok := rec["id"]; ok {
		t.Error("envelope fields must not leak into the record")
	}
}

func TestNewTemplate(t *testing.T) {
	tpl := NewTemplate("delivery defaults", nil, now)
	if tpl.ID == "" || tpl.Name != "delivery defaults" {
		t.Errorf("template = %+v", tpl)
	}
	if tpl.Data == nil {
		t.Error("nil data should normalize to empty map")
	}
}
