package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/vfxspecs/exchange/internal/telemetry"
)

// The DOCX output is a minimal OOXML wordprocessing package written directly:
// [Content_Types].xml, the package relationships, word/document.xml with its
// relationship part, and one media part per embedded logo.

const (
	docxLabelColDxa = 2600
	docxValueColDxa = 4800
	docxLogoColDxa  = 1620
	docxLogoMaxPx   = 40
	emuPerPixel     = 9525
)

type docxImage struct {
	relID string
	name  string // part name under word/
	data  []byte
}

type docxRenderer struct {
	body   bytes.Buffer
	images []docxImage
	log    *telemetry.Logger
	drawID int
}

// renderDOCX lays the assembled document out as an OOXML word-processing
// package. Sections are independent; only zip serialization reports an error.
func renderDOCX(doc *document, log *telemetry.Logger) ([]byte, error) {
	r := &docxRenderer{log: log}

	generated := doc.generated.Format("2006-01-02 15:04:05 MST")

	r.letterhead(doc.letterhead)
	r.para(doc.title, runProps{bold: true, halfSize: 40}, "center")
	r.para(doc.subtitle, runProps{halfSize: 22, color: "6E6E6E"}, "center")
	r.para("Generated: "+generated, runProps{halfSize: 18, color: "6E6E6E"}, "center")
	r.emptyPara()

	for _, sec := range doc.sections {
		r.section(sec)
	}

	r.emptyPara()
	r.para(docAttribution+" — "+generated, runProps{halfSize: 16, color: "6E6E6E"}, "left")

	return r.serialize()
}

func (r *docxRenderer) letterhead(lh *letterhead) {
	if lh == nil {
		return
	}
	defer r.recoverSection("letterhead")

	if lh.logo != nil {
		r.imagePara(lh.logo, "left")
	}
	if lh.name != "" {
		r.para(lh.name, runProps{bold: true, halfSize: 24}, "left")
	}
	for _, line := range lh.lines {
		r.para(line, runProps{halfSize: 18, color: "6E6E6E"}, "left")
	}
	r.emptyPara()
}

func (r *docxRenderer) section(sec renderedSection) {
	defer r.recoverSection(sec.title)

	r.heading(sec.title)
	for _, t := range sec.tables {
		if t.heading != "" {
			r.para(t.heading, runProps{bold: true, halfSize: 22}, "left")
		}
		r.table(t)
		r.emptyPara()
	}
	r.dividerPara()
}

// dividerPara is an empty paragraph carrying a thin bottom border, the
// inter-section rule.
func (r *docxRenderer) dividerPara() {
	r.body.WriteString(`<w:p><w:pPr><w:pBdr>` +
		`<w:bottom w:val="single" w:sz="4" w:space="1" w:color="D0D0D0"/>` +
		`</w:pBdr></w:pPr></w:p>`)
}

func (r *docxRenderer) heading(title string) {
	fmt.Fprintf(&r.body,
		`<w:p><w:pPr><w:shd w:val="clear" w:color="auto" w:fill="263242"/></w:pPr>`+
			`<w:r><w:rPr><w:b/><w:color w:val="FFFFFF"/><w:sz w:val="26"/></w:rPr><w:t xml:space="preserve"> %s</w:t></w:r></w:p>`,
		esc(title))
}

func (r *docxRenderer) table(t table) {
	hasLogoCol := false
	for _, rw := range t.rows {
		if rw.logo != nil {
			hasLogoCol = true
			break
		}
	}

	r.body.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/>` +
		`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="D0D0D0"/>` +
		`</w:tblBorders></w:tblPr>`)

	r.body.WriteString(`<w:tblGrid>`)
	fmt.Fprintf(&r.body, `<w:gridCol w:w="%d"/><w:gridCol w:w="%d"/>`, docxLabelColDxa, docxValueColDxa)
	if hasLogoCol {
		fmt.Fprintf(&r.body, `<w:gridCol w:w="%d"/>`, docxLogoColDxa)
	}
	r.body.WriteString(`</w:tblGrid>`)

	for _, rw := range t.rows {
		r.body.WriteString(`<w:tr>`)
		r.cell(docxLabelColDxa, rw.label, runProps{bold: true, halfSize: 18}, nil)
		r.cell(docxValueColDxa, rw.value, runProps{halfSize: 18}, nil)
		if hasLogoCol {
			r.cell(docxLogoColDxa, "", runProps{}, rw.logo)
		}
		r.body.WriteString(`</w:tr>`)
	}
	r.body.WriteString(`</w:tbl>`)
}

func (r *docxRenderer) cell(widthDxa int, text string, rp runProps, logo *Image) {
	fmt.Fprintf(&r.body, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/><w:vAlign w:val="center"/></w:tcPr>`, widthDxa)
	if logo != nil {
		r.body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
		r.imageRun(logo)
		r.body.WriteString(`</w:p>`)
	} else {
		r.body.WriteString(`<w:p><w:r>`)
		r.body.WriteString(rp.xml())
		fmt.Fprintf(&r.body, `<w:t xml:space="preserve">%s</w:t></w:r></w:p>`, esc(text))
	}
	r.body.WriteString(`</w:tc>`)
}

type runProps struct {
	bold     bool
	halfSize int
	color    string // RRGGBB
}

func (rp runProps) xml() string {
	var b strings.Builder
	b.WriteString(`<w:rPr>`)
	if rp.bold {
		b.WriteString(`<w:b/>`)
	}
	if rp.color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, rp.color)
	}
	if rp.halfSize > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, rp.halfSize)
	}
	b.WriteString(`</w:rPr>`)
	return b.String()
}

func (r *docxRenderer) para(text string, rp runProps, align string) {
	r.body.WriteString(`<w:p>`)
	if align != "" && align != "left" {
		fmt.Fprintf(&r.body, `<w:pPr><w:jc w:val="%s"/></w:pPr>`, align)
	}
	r.body.WriteString(`<w:r>`)
	r.body.WriteString(rp.xml())
	fmt.Fprintf(&r.body, `<w:t xml:space="preserve">%s</w:t></w:r></w:p>`, esc(text))
}

func (r *docxRenderer) emptyPara() {
	r.body.WriteString(`<w:p/>`)
}

func (r *docxRenderer) imagePara(img *Image, align string) {
	r.body.WriteString(`<w:p>`)
	if align != "" && align != "left" {
		fmt.Fprintf(&r.body, `<w:pPr><w:jc w:val="%s"/></w:pPr>`, align)
	}
	r.imageRun(img)
	r.body.WriteString(`</w:p>`)
}

// imageRun emits an inline picture run and records the media part backing it.
func (r *docxRenderer) imageRun(img *Image) {
	r.drawID++
	relID := fmt.Sprintf("rIdImg%d", r.drawID)
	ext := img.Format // png, jpeg, gif match both part extension and content type
	name := fmt.Sprintf("media/image%d.%s", r.drawID, ext)
	r.images = append(r.images, docxImage{relID: relID, name: name, data: img.Data})

	w, h := img.Width, img.Height
	if h > docxLogoMaxPx && h > 0 {
		w = w * docxLogoMaxPx / h
		h = docxLogoMaxPx
	}
	cx, cy := int64(w)*emuPerPixel, int64(h)*emuPerPixel

	fmt.Fprintf(&r.body,
		`<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="Logo%d"/>`+
			`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
			`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:nvPicPr><pic:cNvPr id="%d" name="Logo%d"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		cx, cy, r.drawID, r.drawID, r.drawID, r.drawID, relID, cx, cy)
}

func (r *docxRenderer) recoverSection(title string) {
	if rec := recover(); rec != nil {
		r.log.Warn(context.Background(), "docx section skipped",
			map[string]any{"section": title, "panic": fmt.Sprint(rec)})
	}
}

func (r *docxRenderer) serialize() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", r.contentTypes()},
		{"_rels/.rels", []byte(packageRels)},
		{"word/_rels/document.xml.rels", r.documentRels()},
		{"word/document.xml", r.documentXML()},
	}
	for _, img := range r.images {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/" + img.name, img.data})
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const packageRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (r *docxRenderer) contentTypes() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func (r *docxRenderer) documentRels() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, img := range r.images {
		fmt.Fprintf(&b,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`,
			img.relID, img.name)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func (r *docxRenderer) documentXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document` +
		` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing">`)
	b.WriteString(`<w:body>`)
	b.WriteString(r.body.String())
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1080" w:right="1080" w:bottom="1080" w:left="1080"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string { return xmlEscaper.Replace(s) }
