package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/vfxspecs/exchange/internal/telemetry"
)

// pdfStyle is the process-wide layout configuration. Built once, read-only.
type pdfStyle struct {
	font        string
	titleSize   float64
	subSize     float64
	headingSize float64
	subHeadSize float64
	bodySize    float64
	footSize    float64

	margin   float64
	rowH     float64
	labelW   float64
	logoColW float64
	logoH    float64

	headingFill [3]int
	headingText [3]int
	mutedText   [3]int
	bodyText    [3]int
}

var pdfStyleDefault = pdfStyle{
	font:        "Helvetica",
	titleSize:   20,
	subSize:     11,
	headingSize: 13,
	subHeadSize: 11,
	bodySize:    9,
	footSize:    8,

	margin:   54,
	rowH:     14,
	labelW:   160,
	logoColW: 84,
	logoH:    30,

	headingFill: [3]int{38, 50, 66},
	headingText: [3]int{255, 255, 255},
	mutedText:   [3]int{110, 110, 110},
	bodyText:    [3]int{20, 20, 20},
}

type pdfRenderer struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	st       pdfStyle
	log      *telemetry.Logger
	imageSeq int
}

// renderPDF lays the assembled document out as a paginated PDF. Sections are
// independent: a panic inside one section is swallowed and rendering continues
// with the next. Only serialization reports an error.
func renderPDF(doc *document, log *telemetry.Logger) ([]byte, error) {
	st := pdfStyleDefault
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(st.margin, st.margin, st.margin)
	pdf.SetAutoPageBreak(true, st.margin)
	pdf.AliasNbPages("")

	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), st: st, log: log}

	generated := doc.generated.Format("2006-01-02 15:04:05 MST")
	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetY(pageH - st.margin + 14)
		pdf.SetFont(st.font, "", st.footSize)
		pdf.SetTextColor(st.mutedText[0], st.mutedText[1], st.mutedText[2])
		pdf.CellFormat(0, 10, r.tr(docAttribution+" — "+generated), "", 0, "L", false, 0, "")
		pdf.SetX(-st.margin - 80)
		pdf.CellFormat(80, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	r.letterhead(doc.letterhead)
	r.titleBlock(doc)

	for _, sec := range doc.sections {
		r.section(sec)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) letterhead(lh *letterhead) {
	if lh == nil {
		return
	}
	defer r.recoverSection("letterhead")

	pdf, st := r.pdf, r.st
	top := pdf.GetY()
	textX := st.margin
	if lh.logo != nil {
		if name, ok := r.registerImage(lh.logo); ok {
			w := scaledWidth(lh.logo, 40)
			pdf.ImageOptions(name, st.margin, top, w, 40, false,
				gofpdf.ImageOptions{ImageType: imageTypeName(lh.logo.Format)}, 0, "")
			textX = st.margin + w + 12
		}
	}
	pdf.SetXY(textX, top)
	if lh.name != "" {
		pdf.SetFont(st.font, "B", 12)
		pdf.SetTextColor(st.bodyText[0], st.bodyText[1], st.bodyText[2])
		pdf.CellFormat(0, 14, r.tr(lh.name), "", 1, "L", false, 0, "")
	}
	pdf.SetFont(st.font, "", st.bodySize)
	pdf.SetTextColor(st.mutedText[0], st.mutedText[1], st.mutedText[2])
	for _, line := range lh.lines {
		pdf.SetX(textX)
		pdf.CellFormat(0, 11, r.tr(line), "", 1, "L", false, 0, "")
	}
	if y := top + 46; pdf.GetY() < y {
		pdf.SetY(y)
	}
	r.divider()
}

func (r *pdfRenderer) titleBlock(doc *document) {
	pdf, st := r.pdf, r.st
	pdf.Ln(6)
	pdf.SetFont(st.font, "B", st.titleSize)
	pdf.SetTextColor(st.bodyText[0], st.bodyText[1], st.bodyText[2])
	pdf.CellFormat(0, 24, r.tr(doc.title), "", 1, "C", false, 0, "")
	pdf.SetFont(st.font, "", st.subSize)
	pdf.SetTextColor(st.mutedText[0], st.mutedText[1], st.mutedText[2])
	pdf.CellFormat(0, 14, r.tr(doc.subtitle), "", 1, "C", false, 0, "")
	pdf.SetFont(st.font, "", st.bodySize)
	pdf.CellFormat(0, 12, "Generated: "+doc.generated.Format("2006-01-02 15:04:05 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(8)
}

func (r *pdfRenderer) section(sec renderedSection) {
	defer r.recoverSection(sec.title)

	pdf, st := r.pdf, r.st
	_, pageH := pdf.GetPageSize()
	if pdf.GetY() > pageH-st.margin-120 {
		pdf.AddPage()
	}

	pdf.SetFont(st.font, "B", st.headingSize)
	pdf.SetFillColor(st.headingFill[0], st.headingFill[1], st.headingFill[2])
	pdf.SetTextColor(st.headingText[0], st.headingText[1], st.headingText[2])
	pdf.CellFormat(0, 20, "  "+r.tr(sec.title), "", 1, "L", true, 0, "")
	pdf.Ln(4)

	for i, t := range sec.tables {
		if t.heading != "" {
			if i > 0 {
				pdf.Ln(4)
			}
			pdf.SetFont(st.font, "B", st.subHeadSize)
			pdf.SetTextColor(st.bodyText[0], st.bodyText[1], st.bodyText[2])
			pdf.CellFormat(0, 16, r.tr(t.heading), "", 1, "L", false, 0, "")
		}
		for _, rw := range t.rows {
			r.row(rw)
		}
	}
	pdf.Ln(6)
	r.divider()
	pdf.Ln(4)
}

func (r *pdfRenderer) row(rw row) {
	pdf, st := r.pdf, r.st
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*st.margin

	y0 := pdf.GetY()
	pdf.SetFont(st.font, "B", st.bodySize)
	pdf.SetTextColor(st.bodyText[0], st.bodyText[1], st.bodyText[2])
	pdf.CellFormat(st.labelW, st.rowH, r.tr(rw.label), "", 0, "L", false, 0, "")

	valueW := contentW - st.labelW
	if rw.logo != nil {
		valueW -= st.logoColW
	}
	valueX := pdf.GetX()
	pdf.SetFont(st.font, "", st.bodySize)
	pdf.MultiCell(valueW, st.rowH, r.tr(rw.value), "", "L", false)
	yAfter := pdf.GetY()

	if rw.logo != nil {
		if name, ok := r.registerImage(rw.logo); ok {
			w := scaledWidth(rw.logo, st.logoH)
			x := valueX + valueW + (st.logoColW-w)/2
			pdf.ImageOptions(name, x, y0, w, st.logoH, false,
				gofpdf.ImageOptions{ImageType: imageTypeName(rw.logo.Format)}, 0, "")
			if y := y0 + st.logoH + 4; y > yAfter {
				yAfter = y
			}
		}
	}
	pdf.SetY(yAfter)
}

func (r *pdfRenderer) divider() {
	pdf, st := r.pdf, r.st
	pageW, _ := pdf.GetPageSize()
	y := pdf.GetY() + 4
	pdf.SetDrawColor(st.mutedText[0], st.mutedText[1], st.mutedText[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(st.margin, y, pageW-st.margin, y)
	pdf.SetY(y + 4)
}

// registerImage registers a decoded logo under a fresh name. A registration
// failure must not poison the document, so the sticky error is cleared and the
// logo is dropped.
func (r *pdfRenderer) registerImage(img *Image) (string, bool) {
	r.imageSeq++
	name := fmt.Sprintf("logo-%d", r.imageSeq)
	info := r.pdf.RegisterImageOptionsReader(name,
		gofpdf.ImageOptions{ImageType: imageTypeName(img.Format)},
		bytes.NewReader(img.Data))
	if r.pdf.Err() || info == nil {
		r.pdf.ClearError()
		return "", false
	}
	return name, true
}

func (r *pdfRenderer) recoverSection(title string) {
	if rec := recover(); rec != nil {
		r.log.Warn(context.Background(), "pdf section skipped",
			map[string]any{"section": title, "panic": fmt.Sprint(rec)})
	}
}

func scaledWidth(img *Image, h float64) float64 {
	if img.Height <= 0 {
		return h
	}
	return h * float64(img.Width) / float64(img.Height)
}

func imageTypeName(format string) string {
	return strings.ToUpper(format)
}
