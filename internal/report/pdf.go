// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a types.Report for people: a paginated PDF
// document, a markdown summary (and its HTML rendering for the web UI), and
// JSON/YAML exports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/company-research/pkg/types"
)

// DefaultFilename is the name used for the exported PDF when none is given.
const DefaultFilename = "Company_Report_Final.pdf"

// Placeholder text for absent sections. Empty sections are rendered with
// these rather than omitted.
const (
	NoProfileText  = "No company details found."
	NoJobsText     = "No active job postings found."
	NoContactsText = "No HR contacts found."
)

const (
	pageMargin  = 72.0
	lineHeight  = 13.0
	cellPadding = 4.0
	bodySize    = 10.0
	gridWidth   = 0.5
	fontFamily  = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	black      = rgb{0, 0, 0}
	grey       = rgb{128, 128, 128}
	whiteSmoke = rgb{245, 245, 245}
	darkBlue   = rgb{0, 0, 139}
	linkBlue   = rgb{0, 0, 255}
)

type column struct {
	header string
	width  float64
}

type cell struct {
	text string
	link string
}

type table struct {
	columns     []column
	headerFill  rgb
	rows        [][]cell
	placeholder string
}

func (t table) width() float64 {
	var w float64
	for _, c := range t.columns {
		w += c.width
	}
	return w
}

// WritePDF renders rep as an A4 PDF document to w.
func WritePDF(w io.Writer, rep types.Report) error {
	doc := render(rep)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}

// SavePDF writes the PDF to path. The document is written to a temp file
// in the same directory and renamed on success, so a failed render never
// leaves a truncated file behind.
func SavePDF(path string, rep types.Report) error {
	if path == "" {
		path = DefaultFilename
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := WritePDF(tmpFile, rep)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// pdfWriter carries the document and the UTF-8 to cp1252 translator the
// core fonts need.
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func render(rep types.Report) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Company Report: "+rep.Company, true)
	pdf.SetCreator("company-research", false)
	if !rep.GeneratedAt.IsZero() {
		pdf.SetCreationDate(rep.GeneratedAt)
	}
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.title()
	w.company(rep)
	w.section("Current Hiring Positions")
	w.table(jobsTable(rep.Jobs))
	pdf.Ln(20)
	w.section("Decision Makers")
	w.table(contactsTable(rep.Contacts))
	return pdf
}

func jobsTable(jobs []types.Job) table {
	t := table{
		columns: []column{
			{header: "Position", width: 200},
			{header: "Location", width: 120},
			{header: "Posted", width: 80},
		},
		headerFill:  grey,
		placeholder: NoJobsText,
	}
	for _, j := range jobs {
		t.rows = append(t.rows, []cell{
			{text: j.Title, link: j.ApplyLink},
			{text: j.Location},
			{text: j.PostedAt},
		})
	}
	return t
}

func contactsTable(contacts []types.Contact) table {
	t := table{
		columns: []column{
			{header: "Name", width: 230},
			{header: "LinkedIn", width: 150},
		},
		headerFill:  darkBlue,
		placeholder: NoContactsText,
	}
	for _, c := range contacts {
		label := c.Label
		if label == "" {
			label = types.ContactLinkLabel
		}
		t.rows = append(t.rows, []cell{
			{text: c.Name},
			{text: label, link: c.ProfileLink},
		})
	}
	return t
}

func (w *pdfWriter) setColor(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }

func (w *pdfWriter) title() {
	w.pdf.SetFont(fontFamily, "B", 16)
	w.setColor(black)
	w.pdf.CellFormat(0, 24, "Company Report", "", 1, "C", false, 0, "")
	w.pdf.Ln(20)
}

func (w *pdfWriter) section(heading string) {
	w.pdf.SetFont(fontFamily, "B", 14)
	w.setColor(black)
	w.pdf.MultiCell(0, 18, w.tr(heading), "", "L", false)
	w.pdf.Ln(6)
}

func (w *pdfWriter) company(rep types.Report) {
	p := rep.Profile
	if p.NotFound || (p.Title == "" && p.Link == "") {
		w.section(rep.Company)
		w.pdf.SetFont(fontFamily, "I", bodySize)
		w.pdf.MultiCell(0, lineHeight, NoProfileText, "", "L", false)
		w.pdf.Ln(20)
		return
	}

	w.section(orPlaceholder(p.Title))
	w.pdf.SetFont(fontFamily, "", bodySize)
	w.pdf.MultiCell(0, lineHeight, w.tr(orPlaceholder(p.Snippet)), "", "L", false)
	w.pdf.Ln(4)

	w.pdf.SetFont(fontFamily, "U", bodySize)
	w.setColor(linkBlue)
	w.pdf.WriteLinkString(lineHeight, "Visit Company Website", p.Link)
	w.setColor(black)
	w.pdf.Ln(lineHeight + 20)
}

func orPlaceholder(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}

// table draws t with a filled header row and a 0.5pt grid. Rows that would
// cross the bottom margin move to a new page and the header is repeated.
func (w *pdfWriter) table(t table) {
	header := make([]cell, len(t.columns))
	for i, c := range t.columns {
		header[i] = cell{text: c.header}
	}

	w.pdf.SetDrawColor(black.r, black.g, black.b)
	w.pdf.SetLineWidth(gridWidth)
	if w.overflows(w.rowHeight(t, header, true)) {
		w.pdf.AddPage()
	}
	w.row(t, header, true)

	if len(t.rows) == 0 {
		w.placeholderRow(t)
		return
	}
	for _, r := range t.rows {
		h := w.rowHeight(t, r, false)
		if w.overflows(h) {
			w.pdf.AddPage()
			w.row(t, header, true)
		}
		w.row(t, r, false)
	}
}

func (w *pdfWriter) cellFont(header bool, c cell) {
	switch {
	case header:
		w.pdf.SetFont(fontFamily, "B", bodySize)
	case c.link != "":
		w.pdf.SetFont(fontFamily, "U", bodySize)
	default:
		w.pdf.SetFont(fontFamily, "", bodySize)
	}
}

func (w *pdfWriter) cellLines(t table, i int, c cell, header bool) []string {
	w.cellFont(header, c)
	// SplitLines works on the translated cp1252 bytes the core fonts index.
	split := w.pdf.SplitLines([]byte(w.tr(c.text)), t.columns[i].width-2*cellPadding)
	if len(split) == 0 {
		return []string{""}
	}
	lines := make([]string, len(split))
	for j, l := range split {
		lines[j] = string(l)
	}
	return lines
}

func (w *pdfWriter) rowHeight(t table, cells []cell, header bool) float64 {
	maxLines := 1
	for i, c := range cells {
		if n := len(w.cellLines(t, i, c, header)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*lineHeight + 2*cellPadding
}

func (w *pdfWriter) overflows(h float64) bool {
	_, pageH := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	return w.pdf.GetY()+h > pageH-bottom
}

func (w *pdfWriter) row(t table, cells []cell, header bool) {
	pdf := w.pdf
	h := w.rowHeight(t, cells, header)
	x0, y := pdf.GetX(), pdf.GetY()

	x := x0
	for i, c := range cells {
		width := t.columns[i].width
		if header {
			pdf.SetFillColor(t.headerFill.r, t.headerFill.g, t.headerFill.b)
			pdf.Rect(x, y, width, h, "FD")
			w.setColor(whiteSmoke)
		} else {
			pdf.Rect(x, y, width, h, "D")
			if c.link != "" {
				w.setColor(linkBlue)
			} else {
				w.setColor(black)
			}
		}

		// Cells are top-aligned: lines start at the top padding.
		for j, line := range w.cellLines(t, i, c, header) {
			pdf.SetXY(x+cellPadding, y+cellPadding+float64(j)*lineHeight)
			pdf.CellFormat(width-2*cellPadding, lineHeight, line, "", 0, "L", false, 0, "")
		}
		if !header && c.link != "" {
			pdf.LinkString(x, y, width, h, c.link)
		}
		x += width
	}

	w.setColor(black)
	pdf.SetXY(x0, y+h)
}

func (w *pdfWriter) placeholderRow(t table) {
	pdf := w.pdf
	width := t.width()
	h := lineHeight + 2*cellPadding
	x, y := pdf.GetX(), pdf.GetY()

	pdf.Rect(x, y, width, h, "D")
	pdf.SetFont(fontFamily, "I", bodySize)
	w.setColor(black)
	pdf.SetXY(x+cellPadding, y+cellPadding)
	pdf.CellFormat(width-2*cellPadding, lineHeight, t.placeholder, "", 0, "L", false, 0, "")
	pdf.SetXY(x, y+h)
}
