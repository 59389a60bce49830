package export

import (
	"strings"
	"time"

	"github.com/vfxspecs/exchange/internal/spec"
)

// Kind selects a filename convention.
type Kind string

const (
	// KindPulls names plate pulls handed to VFX vendors.
	KindPulls Kind = "pulls"
	// KindDeliveries names shots delivered back by vendors.
	KindDeliveries Kind = "deliveries"
	// KindDocument names the exported specification document itself.
	KindDocument Kind = "document"
)

const documentTitleDefault = "VFX_Specification"

// pullsDefaults and deliveriesDefaults are the fixed per-field fallback tokens.
// The generator is a total function: any missing or malformed field substitutes
// its default, and the document kind always yields a timestamped name.
var pullsDefaults = []struct{ key, def string }{
	{"showId", "AAA"},
	{"episode", "101"},
	{"sequence", "001"},
	{"scene", "001"},
	{"shotId", "0010"},
	{"plate", "PL01"},
	{"version", "v001"},
}

var deliveriesDefaults = []struct{ key, def string }{
	{"showId", "AAA"},
	{"episode", "101"},
	{"sequence", "001"},
	{"scene", "001"},
	{"shotId", "0010"},
	{"task", "comp"},
	{"vendorCodeName", "VEND"},
	{"version", "v001"},
}

// Filename derives the convention-based name for kind from the record. The
// pulls and deliveries kinds are pure functions of the record; the document
// kind appends a timestamp captured from now.
func Filename(kind Kind, rec map[string]any, now time.Time) string {
	switch kind {
	case KindPulls:
		return frameFilename(mapAt(rec, "vfxPulls"), pullsDefaults)
	case KindDeliveries:
		return frameFilename(mapAt(rec, "vfxDeliveries"), deliveriesDefaults)
	default:
		return documentFilename(rec, now)
	}
}

func frameFilename(body map[string]any, defaults []struct{ key, def string }) string {
	toks := make([]string, 0, len(defaults))
	for _, d := range defaults {
		toks = append(toks, token(body, d.key, d.def))
	}
	return strings.Join(toks, "_") + "." + token(body, "framePadding", "####") + ".exr"
}

func documentFilename(rec map[string]any, now time.Time) string {
	title := token(mapAt(rec, "projectInfo"), "projectTitle", documentTitleDefault)
	title = strings.ReplaceAll(title, " ", "_")
	return title + "_VFX_Spec_" + now.Format("20060102_150405")
}

// token reads a display value from body, falling back to def for anything the
// presence policy rejects.
func token(body map[string]any, key, def string) string {
	if body == nil {
		return def
	}
	v, ok := body[key]
	if !ok || !spec.IsPresent(v) {
		return def
	}
	s := displayString(v)
	if s == "" {
		return def
	}
	return s
}
