// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/company-research/pkg/types"
)

func sampleReport() types.Report {
	return types.Report{
		Company: "Acme Corp",
		Profile: types.CompanyProfile{
			Title:   "Acme Corp – Official",
			Link:    "https://acme.example",
			Snippet: "Acme makes widgets.",
		},
		Jobs: []types.Job{
			{Title: "Backend Engineer", Location: "Berlin", PostedAt: "3 days ago", ApplyLink: "https://apply.example/1"},
		},
		Contacts: []types.Contact{
			{Name: "Jane Doe - HR Head - Acme Corp", Label: types.ContactLinkLabel, ProfileLink: "https://www.linkedin.com/in/jane"},
		},
		GeneratedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
}

// --- PDF ---

func TestWritePDF_MinimalReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleReport()))

	out := buf.Bytes()
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.Contains(t, string(out), "%%EOF")
	// Link annotations are written uncompressed in the page dictionaries.
	assert.Contains(t, string(out), "https://acme.example")
	assert.Contains(t, string(out), "https://apply.example/1")
	assert.Contains(t, string(out), "https://www.linkedin.com/in/jane")
}

func TestWritePDF_EmptySections(t *testing.T) {
	rep := types.Report{Company: "Nobody Inc", Profile: types.NotFoundProfile()}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, render(rep).PageNo())
}

func TestWritePDF_NonLatinText(t *testing.T) {
	rep := sampleReport()
	rep.Profile.Title = "Ünïcødé – “quoted” Société"
	rep.Contacts[0].Name = "株式会社 🚀"

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, rep))
	assert.NotZero(t, buf.Len())
}

func TestRender_TablesSpanPages(t *testing.T) {
	rep := sampleReport()
	for i := 0; i < 120; i++ {
		rep.Jobs = append(rep.Jobs, types.Job{
			Title:     fmt.Sprintf("Senior Staff Principal Distinguished Engineer, Platform Reliability %d", i),
			Location:  "Remote",
			PostedAt:  "N/A",
			ApplyLink: "#",
		})
	}

	doc := render(rep)
	require.False(t, doc.Err(), "render error: %v", doc.Error())
	assert.Greater(t, doc.PageNo(), 2)
}

func TestTableHeaderMovesToNextPageNearBottom(t *testing.T) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	w := &pdfWriter{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	_, pageH := doc.GetPageSize()
	doc.SetY(pageH - pageMargin - 5)
	w.table(jobsTable(nil))

	require.False(t, doc.Err(), "render error: %v", doc.Error())
	rowH := lineHeight + 2*cellPadding
	assert.Equal(t, 2, doc.PageNo())
	// Header and placeholder row both sit at the top of the new page.
	assert.InDelta(t, pageMargin+2*rowH, doc.GetY(), 0.01)
}

func TestRowHeightGrowsWithWrappedText(t *testing.T) {
	doc := render(types.Report{})
	w := &pdfWriter{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	tbl := jobsTable(nil)

	short := w.rowHeight(tbl, []cell{{text: "Engineer"}, {text: "Berlin"}, {text: "today"}}, false)
	long := w.rowHeight(tbl, []cell{{text: strings.Repeat("Engineering Manager ", 10)}, {text: "Berlin"}, {text: "today"}}, false)

	assert.Equal(t, lineHeight+2*cellPadding, short)
	assert.Greater(t, long, short)
}

func TestContactsTableDefaultsLabel(t *testing.T) {
	tbl := contactsTable([]types.Contact{{Name: "A", ProfileLink: "https://x"}})
	require.Len(t, tbl.rows, 1)
	assert.Equal(t, types.ContactLinkLabel, tbl.rows[0][1].text)
	assert.Equal(t, "https://x", tbl.rows[0][1].link)
	assert.Equal(t, 380.0, tbl.width())
}

func TestSavePDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", DefaultFilename)

	require.NoError(t, SavePDF(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

// --- Markdown / HTML ---

func TestMarkdown_FullReport(t *testing.T) {
	md := Markdown(sampleReport())

	assert.Contains(t, md, "## Company Overview")
	assert.Contains(t, md, "**Acme Corp – Official**")
	assert.Contains(t, md, "Acme makes widgets.")
	assert.Contains(t, md, "[Visit Website](https://acme.example)")
	assert.Contains(t, md, "- [Backend Engineer](https://apply.example/1) – Berlin – Posted: 3 days ago")
	assert.Contains(t, md, "- Jane Doe - HR Head - Acme Corp → [LinkedIn Profile](https://www.linkedin.com/in/jane)")
}

func TestMarkdown_EmptySections(t *testing.T) {
	md := Markdown(types.Report{Company: "X", Profile: types.NotFoundProfile()})

	assert.Contains(t, md, "> No company details found.")
	assert.Contains(t, md, "_No active job postings found._")
	assert.Contains(t, md, "_No HR contacts found._")
	assert.NotContains(t, md, "Visit Website")
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"a *bold* _claim_", `a \*bold\* \_claim\_`},
		{"[link](x)", `\[link\](x)`},
		{"<script>alert(1)</script>", `\<script\>alert(1)\</script\>`},
		{"# Heading", `\# Heading`},
		{"- item", `\- item`},
		{"2024. Year", `2024\. Year`},
		{"line one\nline two", "line one line two"},
		{"  trimmed  ", "trimmed"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeMarkdown(tt.in))
		})
	}
}

func TestLinkDestination(t *testing.T) {
	assert.Equal(t, "#", linkDestination(""))
	assert.Equal(t, "https://x.example/a%20b%28c%29", linkDestination("https://x.example/a b(c)"))
}

func TestHTML(t *testing.T) {
	rep := sampleReport()
	rep.Profile.Snippet = `Widgets <img src=x onerror=alert(1)> & more`

	html, err := HTML(rep)
	require.NoError(t, err)

	assert.Contains(t, html, "<h2>Company Overview</h2>")
	assert.Contains(t, html, `<a href="https://acme.example">Visit Website</a>`)
	assert.Contains(t, html, `<a href="https://apply.example/1">Backend Engineer</a>`)
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;img")
}

// --- JSON / YAML ---

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got types.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Acme Corp", got.Company)
	assert.Contains(t, buf.String(), `"apply_link": "https://apply.example/1"`)
	assert.NotContains(t, buf.String(), "not_found")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleReport()))

	assert.Contains(t, buf.String(), "company: Acme Corp")
	assert.Contains(t, buf.String(), "profile_link: https://www.linkedin.com/in/jane")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["jobs"], 1)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"r.json", "r.yaml", "r.yml", "r.md", "r.pdf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Export(path, sampleReport()))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.NotZero(t, info.Size())
		})
	}

	err := Export(filepath.Join(dir, "r.docx"), sampleReport())
	assert.ErrorContains(t, err, "unsupported export format")
}
