// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/company-research/pkg/types"
)

// Section headings shared by the markdown summary and the web UI.
const (
	OverviewHeading = "Company Overview"
	HiringHeading   = "Current Hiring Positions"
	ContactsHeading = "Decision Makers"
)

// WriteMarkdown writes the on-screen summary of rep: the company overview,
// one bullet per job linking to its apply URL, and one bullet per contact
// linking to the profile.
func WriteMarkdown(w io.Writer, rep types.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", OverviewHeading)
	p := rep.Profile
	if p.NotFound || (p.Title == "" && p.Link == "") {
		fmt.Fprintf(&b, "> %s\n\n", escapeMarkdown(NoProfileText))
	} else {
		fmt.Fprintf(&b, "**%s**\n\n", escapeMarkdown(p.Title))
		if p.Snippet != "" {
			fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(p.Snippet))
		}
		fmt.Fprintf(&b, "[Visit Website](%s)\n\n", linkDestination(p.Link))
	}

	fmt.Fprintf(&b, "## %s\n\n", HiringHeading)
	if len(rep.Jobs) == 0 {
		fmt.Fprintf(&b, "_%s_\n\n", escapeMarkdown(NoJobsText))
	} else {
		for _, j := range rep.Jobs {
			fmt.Fprintf(&b, "- [%s](%s) – %s – Posted: %s\n",
				escapeMarkdown(j.Title), linkDestination(j.ApplyLink),
				escapeMarkdown(j.Location), escapeMarkdown(j.PostedAt))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", ContactsHeading)
	if len(rep.Contacts) == 0 {
		fmt.Fprintf(&b, "_%s_\n", escapeMarkdown(NoContactsText))
	} else {
		for _, c := range rep.Contacts {
			label := c.Label
			if label == "" {
				label = types.ContactLinkLabel
			}
			fmt.Fprintf(&b, "- %s → [%s](%s)\n",
				escapeMarkdown(c.Name), escapeMarkdown(label), linkDestination(c.ProfileLink))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown returns the summary as a string.
func Markdown(rep types.Report) string {
	var b strings.Builder
	WriteMarkdown(&b, rep)
	return b.String()
}

// HTML renders the markdown summary with goldmark. Raw HTML in provider
// text is escaped or dropped, never passed through.
func HTML(rep types.Report) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(rep)), &buf); err != nil {
		return "", fmt.Errorf("rendering summary HTML: %w", err)
	}
	return buf.String(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	"\r\n", " ",
	"\n", " ",
)

// escapeMarkdown makes provider text safe to embed inline: it cannot open
// emphasis, links, or HTML, and cannot start a block construct.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '-', '+', '=':
		s = `\` + s
	}
	// "1. text" or "1) text" would start an ordered list.
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = s[:i] + `\` + s[i:]
	}
	return s
}

var destinationEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
)

func linkDestination(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return types.NoLink
	}
	return destinationEscaper.Replace(link)
}
