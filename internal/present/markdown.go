package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders a panel as a markdown document.
func Markdown(p Panel) string {
	var b strings.Builder
	switch p := p.(type) {
	case Placeholder:
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", p.Title, p.Intro)
		writeList(&b, p.Bullets)
	case Busy:
		fmt.Fprintf(&b, "_%s_\n", p.Text)
	case Alert:
		fmt.Fprintf(&b, "> **Unable to continue:** %s\n", escapeMarkdown(p.Message))
	case Result:
		writeResult(&b, p)
	}
	return b.String()
}

func writeResult(b *strings.Builder, r Result) {
	b.WriteString("Recommended play\n\n")
	fmt.Fprintf(b, "## %s\n\n%s\n\n", escapeMarkdown(r.PitchCall), escapeMarkdown(r.CatcherPlan))

	b.WriteString("### Defensive alignment\n\n")
	if len(r.Alignment) == 0 {
		b.WriteString("_No adjustments._\n\n")
	}
	for _, row := range r.Alignment {
		fmt.Fprintf(b, "- **%s**: %s\n", escapeMarkdown(row.Position), escapeMarkdown(row.Instruction))
	}
	if len(r.Alignment) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("### Signals to relay\n\n")
	fmt.Fprintf(b, "- **Hitter**: %s\n", escapeMarkdown(r.Hitter))
	fmt.Fprintf(b, "- **Runners**: %s\n", escapeMarkdown(r.Runner))

	if len(r.KeyPoints) > 0 {
		b.WriteString("\n### Key points\n\n")
		points := make([]string, len(r.KeyPoints))
		for i, p := range r.KeyPoints {
			points[i] = escapeMarkdown(p)
		}
		writeList(b, points)
	}
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

var inlineEscaper = strings.NewReplacer(
	"\r\n", " ", "\n", " ", "\r", " ",
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
	"|", `\|`, "~", `\~`, "&", `\&`,
)

// escapeMarkdown makes service text render literally inside a single line
// of the document.
func escapeMarkdown(s string) string {
	s = strings.TrimSpace(inlineEscaper.Replace(s))
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '+', '-', '=':
		return `\` + s
	}
	// Ordered list markers: "1." or "1)".
	digits := 0
	for digits < len(s) && digits < 9 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') &&
		(digits+1 == len(s) || s[digits+1] == ' ') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

// RenderMarkdown renders md for a terminal of the given width. Style is a
// glamour standard style name ("dark", "light", "notty"); "auto" or empty
// detects it from the terminal.
func RenderMarkdown(md string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
