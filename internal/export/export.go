// Package export renders a loosely-typed VFX specification record into PDF and
// DOCX documents. The record is untrusted and may have any shape; rendering
// always succeeds short of a serialization failure, degrading missing or
// malformed fields to omitted output.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfxspecs/exchange/internal/spec"
	"github.com/vfxspecs/exchange/internal/telemetry"
)

// ErrRender is the only error class surfaced to callers: the document could
// not be serialized. Field-level and section-level problems never reach here.
var ErrRender = errors.New("export: render failed")

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

const (
	docTitle       = "VFX SPECIFICATION DOCUMENT"
	docSubtitle    = "Image Format Exchange Specs"
	docAttribution = "Generated by VFX Specs Exchange"
)

// Result is an assembled document plus its download metadata.
type Result struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Exporter renders specification records. It is stateless apart from an
// injectable clock and safe for concurrent use; each render call builds its
// own document and buffer.
type Exporter struct {
	log *telemetry.Logger
	now func() time.Time
}

func New(log *telemetry.Logger) *Exporter {
	if log == nil {
		log = telemetry.Nop
	}
	return &Exporter{log: log, now: time.Now}
}

// Render assembles the record into the requested format.
func (e *Exporter) Render(ctx context.Context, rec map[string]any, f Format) (Result, error) {
	now := e.now().UTC()
	doc := e.assemble(ctx, rec, now)

	var (
		data []byte
		ct   string
		ext  string
		err  error
	)
	switch f {
	case FormatDOCX:
		data, err = renderDOCX(doc, e.log)
		ct, ext = ContentTypeDOCX, ".docx"
	default:
		data, err = renderPDF(doc, e.log)
		ct, ext = ContentTypePDF, ".pdf"
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return Result{
		Data:        data,
		ContentType: ct,
		Filename:    Filename(KindDocument, rec, now) + ext,
	}, nil
}

// document is the neutral assembled model both format renderers lay out.
type document struct {
	letterhead *letterhead
	title      string
	subtitle   string
	generated  time.Time
	sections   []renderedSection
}

type letterhead struct {
	name  string
	lines []string
	logo  *Image
}

type renderedSection struct {
	title  string
	tables []table
}

// table is one label/value block; heading is set for camera subsections.
type table struct {
	heading string
	rows    []row
}

type row struct {
	label string
	value string
	logo  *Image
}

// assemble walks the fixed section catalog, applying the presence policy per
// field and per section. Sections with no present fields contribute nothing.
func (e *Exporter) assemble(ctx context.Context, rec map[string]any, now time.Time) *document {
	doc := &document{
		title:     docTitle,
		subtitle:  docSubtitle,
		generated: now,
	}

	doc.letterhead = e.assembleLetterhead(ctx, rec)

	for _, def := range sectionCatalog {
		var sec *renderedSection
		if def.key == sectionCameraFormats {
			sec = e.assembleCameras(rec)
		} else {
			sec = e.assembleSection(rec, def, now)
		}
		if sec != nil {
			doc.sections = append(doc.sections, *sec)
		}
	}
	return doc
}

func (e *Exporter) assembleLetterhead(ctx context.Context, rec map[string]any) *letterhead {
	body := mapAt(rec, "letterheadInfo")
	if body == nil {
		return nil
	}
	lh := &letterhead{}
	if spec.IsPresent(body["userCompanyName"]) {
		lh.name = displayString(body["userCompanyName"])
	}
	for _, key := range []string{"email", "address", "website"} {
		if spec.IsPresent(body[key]) {
			lh.lines = append(lh.lines, displayString(body[key]))
		}
	}
	if raw, ok := ResolveLogo(rec, "letterheadInfo.logo"); ok {
		img, ok := DecodeLogo(raw)
		if !ok {
			e.log.Warn(ctx, "letterhead logo undecodable, omitting", nil)
		}
		lh.logo = img
	}
	if lh.name == "" && len(lh.lines) == 0 && lh.logo == nil {
		return nil
	}
	return lh
}

func (e *Exporter) assembleSection(rec map[string]any, def sectionDef, now time.Time) *renderedSection {
	body := mapAt(rec, def.key)
	if body == nil {
		return nil
	}
	rows := buildRows(rec, body, def.fields)
	if len(rows) == 0 {
		return nil
	}
	if def.filenameKind != "" {
		rows = append(rows, row{
			label: "Filename Example",
			value: Filename(def.filenameKind, rec, now),
		})
	}
	return &renderedSection{title: def.title, tables: []table{{rows: rows}}}
}

// assembleCameras renders one subsection per camera entry in input order.
// Entries with no present fields are skipped individually and do not consume a
// subsection number; numbering counts rendered entries only.
func (e *Exporter) assembleCameras(rec map[string]any) *renderedSection {
	entries := sliceAt(rec, sectionCameraFormats)
	if len(entries) == 0 {
		return nil
	}
	sec := &renderedSection{title: "Camera Formats"}
	n := 0
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		rows := buildRows(rec, entry, cameraFields)
		if len(rows) == 0 {
			continue
		}
		n++
		id := "Unknown"
		if spec.IsPresent(entry["cameraId"]) {
			id = displayString(entry["cameraId"])
		}
		sec.tables = append(sec.tables, table{
			heading: fmt.Sprintf("Camera %d: %s", n, id),
			rows:    rows,
		})
	}
	if len(sec.tables) == 0 {
		return nil
	}
	return sec
}
