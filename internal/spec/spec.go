// Package spec defines the VFX specification record and template types and the
// shared presence predicate used by the export renderers.
package spec

import (
	"time"

	"github.com/google/uuid"
)

// Spec is a stored VFX specification. Section bodies stay schema-less maps:
// the form evolves faster than the backend and the export boundary must accept
// any shape, so only the envelope is typed.
type Spec struct {
	ID             string           `json:"id"`
	Name           string           `json:"name,omitempty"`
	LetterheadInfo map[string]any   `json:"letterheadInfo,omitempty"`
	ProjectInfo    map[string]any   `json:"projectInfo,omitempty"`
	CameraFormats  []map[string]any `json:"cameraFormats,omitempty"`
	VFXPulls       map[string]any   `json:"vfxPulls,omitempty"`
	MediaReview    map[string]any   `json:"mediaReview,omitempty"`
	VFXDeliveries  map[string]any   `json:"vfxDeliveries,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Update carries a partial spec. Nil fields are "not submitted" and leave the
// stored value untouched; submitted sections replace the stored section whole.
type Update struct {
	Name           *string          `json:"name"`
	LetterheadInfo map[string]any   `json:"letterheadInfo"`
	ProjectInfo    map[string]any   `json:"projectInfo"`
	CameraFormats  []map[string]any `json:"cameraFormats"`
	VFXPulls       map[string]any   `json:"vfxPulls"`
	MediaReview    map[string]any   `json:"mediaReview"`
	VFXDeliveries  map[string]any   `json:"vfxDeliveries"`
}

// Template is a named reusable form payload.
type Template struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

// New builds a spec from a create payload, seeding ids, timestamps, and the
// default camera format when none was supplied.
func New(u Update, now time.Time) *Spec {
	s := &Spec{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	s.Apply(u, now)
	if len(s.CameraFormats) == 0 {
		s.CameraFormats = DefaultCameraFormats()
	}
	return s
}

// Apply merges an update into the spec and refreshes UpdatedAt.
func (s *Spec) Apply(u Update, now time.Time) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.LetterheadInfo != nil {
		s.LetterheadInfo = u.LetterheadInfo
	}
	if u.ProjectInfo != nil {
		s.ProjectInfo = u.ProjectInfo
	}
	if u.CameraFormats != nil {
		s.CameraFormats = u.CameraFormats
	}
	if u.VFXPulls != nil {
		s.VFXPulls = u.VFXPulls
	}
	if u.MediaReview != nil {
		s.MediaReview = u.MediaReview
	}
	if u.VFXDeliveries != nil {
		s.VFXDeliveries = u.VFXDeliveries
	}
	s.UpdatedAt = now.UTC()
}

// Record flattens the spec into the untyped shape the export renderers consume.
func (s *Spec) Record() map[string]any {
	rec := make(map[string]any, 6)
	if s.LetterheadInfo != nil {
		rec["letterheadInfo"] = s.LetterheadInfo
	}
	if s.ProjectInfo != nil {
		rec["projectInfo"] = s.ProjectInfo
	}
	if s.CameraFormats != nil {
		cams := make([]any, 0, len(s.CameraFormats))
		for _, c := range s.CameraFormats {
			cams = append(cams, c)
		}
		rec["cameraFormats"] = cams
	}
	if s.VFXPulls != nil {
		rec["vfxPulls"] = s.VFXPulls
	}
	if s.MediaReview != nil {
		rec["mediaReview"] = s.MediaReview
	}
	if s.VFXDeliveries != nil {
		rec["vfxDeliveries"] = s.VFXDeliveries
	}
	return rec
}

// DefaultCameraFormats is the single-entry camera block seeded on create when
// the caller supplied none.
func DefaultCameraFormats() []map[string]any {
	return []map[string]any{{
		"id":                 1,
		"cameraId":           "Camera A",
		"sourceCamera":       "Arri Alexa 35",
		"codec":              "Arri Raw (HDE)",
		"sensorMode":         "Open Gate (4608 x 3164)",
		"lensSqueezeeFactor": "1:1",
		"colorSpace":         "ARRI - LogC4/AWG4",
	}}
}

// NewTemplate builds a template from a name and arbitrary form data.
func NewTemplate(name string, data map[string]any, now time.Time) *Template {
	if data == nil {
		data = map[string]any{}
	}
	return &Template{
		ID:        uuid.NewString(),
		Name:      name,
		Data:      data,
		CreatedAt: now.UTC(),
	}
}
