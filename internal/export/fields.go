package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfxspecs/exchange/internal/spec"
)

// The section/field catalog is declared once and consumed by both the PDF and
// DOCX renderers, so the two formats cannot drift in field coverage or order.
// Output order follows this catalog, not the insertion order of the record.

type fieldDef struct {
	key   string
	label string
	// logoPath names an associated logo resolved from the record root; rows
	// whose logo resolves gain an image column.
	logoPath string
}

type sectionDef struct {
	key    string
	title  string
	fields []fieldDef
	// filenameKind adds a computed "Filename Example" row when the section is
	// rendered at all.
	filenameKind Kind
}

const sectionCameraFormats = "cameraFormats"

var cameraFields = []fieldDef{
	{key: "cameraId", label: "Camera ID"},
	{key: "sourceCamera", label: "Source Camera"},
	{key: "codec", label: "Codec"},
	{key: "sensorMode", label: "Sensor Mode"},
	{key: "lensSqueezeeFactor", label: "Lens Squeeze Factor"},
	{key: "colorSpace", label: "Color Space"},
}

var sectionCatalog = []sectionDef{
	{
		key:   "projectInfo",
		title: "Project Information",
		fields: []fieldDef{
			{key: "documentVersion", label: "Document Version"},
			{key: "projectDate", label: "Project Date"},
			{key: "projectTitle", label: "Project Title"},
			{key: "projectCodeName", label: "Project Code Name"},
			{key: "projectFormat", label: "Project Format"},
			{key: "client", label: "Client", logoPath: "projectInfo.clientLogo"},
			{key: "director", label: "Director"},
			{key: "dop", label: "DOP"},
			{key: "productionCompany", label: "Production Company", logoPath: "projectInfo.productionCompanyLogo"},
			{key: "postProductionSupervisor", label: "Post Production Supervisor"},
			{key: "lab", label: "Lab", logoPath: "projectInfo.labLogo"},
			{key: "colorist", label: "Colorist"},
			{key: "vfxSupervisor", label: "VFX Supervisor"},
			{key: "vfxOnSetSupervisor", label: "VFX On-Set Supervisor"},
			{key: "vfxVendor", label: "VFX Vendor", logoPath: "projectInfo.vfxVendorLogo"},
			{key: "vendorCodeName", label: "Vendor Code Name"},
			{key: "vfxDocumentsLink", label: "VFX Documents Link"},
			{key: "projectFrameRate", label: "Frame Rate"},
			{key: "colorScience", label: "Color Science"},
			{key: "additionalNotes", label: "Additional Notes"},
		},
	},
	{
		key:   sectionCameraFormats,
		title: "Camera Formats",
	},
	{
		key:   "vfxPulls",
		title: "VFX Pulls",
		fields: []fieldDef{
			{key: "fileFormat", label: "File Format"},
			{key: "compression", label: "Compression"},
			{key: "resolution", label: "Resolution"},
			{key: "colorSpace", label: "Color Space"},
			{key: "bitDepth", label: "Bit Depth"},
			{key: "frameHandles", label: "Frame Handles"},
			{key: "framePadding", label: "Frame Padding"},
			{key: "vfxLutsLink", label: "VFX LUTs Link"},
			{key: "showId", label: "Show ID"},
			{key: "episode", label: "Episode"},
			{key: "sequence", label: "Sequence"},
			{key: "scene", label: "Scene"},
			{key: "shotId", label: "Shot ID"},
			{key: "plate", label: "Plate"},
			{key: "identifier", label: "Identifier"},
			{key: "version", label: "Version"},
		},
		filenameKind: KindPulls,
	},
	{
		key:   "mediaReview",
		title: "Media Review",
		fields: []fieldDef{
			{key: "container", label: "Container"},
			{key: "videoCodec", label: "Video Codec"},
			{key: "resolution", label: "Resolution"},
			{key: "aspectRatio", label: "Aspect Ratio"},
			{key: "letterboxing", label: "Letterboxing"},
			{key: "frameRate", label: "Frame Rate"},
			{key: "colorSpace", label: "Color Space"},
			{key: "slateOverlaysLink", label: "Slate Overlays Link"},
		},
	},
	{
		key:   "vfxDeliveries",
		title: "VFX Deliveries",
		fields: []fieldDef{
			{key: "showId", label: "Show ID"},
			{key: "episode", label: "Episode"},
			{key: "sequence", label: "Sequence"},
			{key: "scene", label: "Scene"},
			{key: "shotId", label: "Shot ID"},
			{key: "task", label: "Task"},
			{key: "vendorCodeName", label: "Vendor Code Name"},
			{key: "version", label: "Version"},
		},
		filenameKind: KindDeliveries,
	},
}

// displayString converts a field value to its rendered string form. JSON
// numbers arrive as float64; integral values drop the decimal point.
func displayString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// mapAt returns the mapping stored under key, or nil when absent or not a
// mapping. The record is untrusted; wrong shapes degrade to "absent".
func mapAt(rec map[string]any, key string) map[string]any {
	if rec == nil {
		return nil
	}
	m, _ := rec[key].(map[string]any)
	return m
}

// sliceAt returns the sequence stored under key, tolerating both decoded-JSON
// ([]any) and typed ([]map[string]any) representations.
func sliceAt(rec map[string]any, key string) []map[string]any {
	if rec == nil {
		return nil
	}
	switch x := rec[key].(type) {
	case []map[string]any:
		return x
	case []any:
		out := make([]map[string]any, 0, len(x))
		for _, e := range x {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			} else {
				out = append(out, nil)
			}
		}
		return out
	default:
		return nil
	}
}

// buildRows extracts the present fields of one mapping in catalog order.
func buildRows(rec map[string]any, body map[string]any, fields []fieldDef) []row {
	rows := make([]row, 0, len(fields))
	for _, f := range fields {
		v, ok := body[f.key]
		if !ok || !spec.IsPresent(v) {
			continue
		}
		r := row{label: f.label, value: displayString(v)}
		if f.logoPath != "" {
			if raw, ok := ResolveLogo(rec, f.logoPath); ok {
				if img, ok := DecodeLogo(raw); ok {
					r.logo = img
				}
			}
		}
		rows = append(rows, r)
	}
	return rows
}
