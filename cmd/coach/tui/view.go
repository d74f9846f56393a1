package tui

import (
	"fmt"
	"strings"

	"playcoach/cmd/coach/ui"
	"playcoach/internal/present"
	"playcoach/internal/situation"
	"playcoach/internal/submission"

	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle    = "Game Play Coach"
	appTagline  = "Craft the next winning call"
	formTitle   = "Game situation"
	formIntro   = "Fill in the current game state to generate a contextual recommendation."
	runnersHead = "Runners on base"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.layout.TooSmall() {
		return m.styles.Warning.Render(fmt.Sprintf(
			"Terminal too small (%dx%d). Resize to at least %dx%d.",
			m.layout.TerminalWidth, m.layout.TerminalHeight,
			ui.MinimumTerminalWidth, ui.MinimumTerminalHeight,
		))
	}

	st := m.controller.State()
	formWidth, panelWidth := m.layout.PaneWidths()

	formView := m.renderForm(st, formWidth)
	panelView := m.renderPanel(st, panelWidth)
	var body string
	if m.layout.IsCompact || m.layout.TerminalWidth == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, formView, panelView)
	} else {
		formView = lipgloss.NewStyle().Width(formWidth).Render(formView)
		body = lipgloss.JoinHorizontal(lipgloss.Top, formView, " ", panelView)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBanner(st),
		body,
		m.styles.Footer.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderHeader() string {
	header := m.styles.Header.Render(appTitle) + " " + m.styles.Subtitle.Render(appTagline)
	if m.endpoint != "" {
		header += "  " + m.styles.Badge.Render(m.endpoint)
	}
	return header
}

func (m Model) renderBanner(st submission.State) string {
	b := present.BannerFor(st)
	lead := ui.BannerIcon(b.Tone)
	if b.Tone == present.ToneInfo {
		lead = m.spinner.View()
	}
	return m.styles.BannerStyle(b.Tone).Render(lead + " " + b.Text)
}

func (m Model) renderForm(st submission.State, width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(formTitle))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(formIntro))
	b.WriteString("\n\n")

	doc := m.form.Situation()
	for i, f := range m.fields {
		if f == situation.FieldRunnerOnFirst {
			b.WriteString("\n" + m.styles.Bold.Render(runnersHead) + "\n")
		}
		if f == situation.FieldContextNotes || f == situation.FieldSaveToHistory {
			b.WriteString("\n")
		}
		b.WriteString(m.renderField(i, f, doc))
		b.WriteString("\n")
	}

	if warnings := doc.RangeWarnings(); len(warnings) > 0 {
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(m.styles.Warning.Render("⚠ " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.RenderDivider(width - 2))
	b.WriteString("\n")
	b.WriteString(m.renderActions(present.ActionsFor(st, doc.Submittable())))
	return b.String()
}

func (m Model) renderField(i int, f situation.Field, doc situation.Situation) string {
	focused := i == m.focus
	cursor := "  "
	if focused {
		cursor = m.styles.Spinner.Render("▸ ")
	}

	label := m.styles.Label
	if focused {
		label = m.styles.FocusedLabel
	}

	switch f.Kind() {
	case situation.KindFlag:
		on, _ := doc.Flag(f)
		box := "[ ]"
		if on {
			box = "[x]"
		}
		text := m.styles.Body.Render(f.Label())
		if focused {
			text = m.styles.FocusedLabel.UnsetWidth().Render(f.Label())
		}
		return cursor + box + " " + text

	case situation.KindChoice:
		half := doc.HalfInning.Title()
		return cursor + label.Render(f.Label()) + "‹ " + half + " ›"

	default:
		line := cursor + label.Render(f.Label()) + m.inputs[i].View()
		if hint, ok := f.Hint(); ok {
			line += " " + m.styles.Hint.Render("("+hint.String()+")")
		}
		return line
	}
}

func (m Model) renderActions(a present.Actions) string {
	button := func(label string, enabled, focused bool) string {
		style := m.styles.Button
		switch {
		case !enabled:
			style = m.styles.ButtonDisabled
		case focused:
			style = m.styles.ButtonFocused
		}
		return style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		button(a.SubmitLabel, a.SubmitEnabled, m.focus == m.submitIndex()),
		button(a.ResetLabel, a.ResetEnabled, m.focus == m.resetIndex()),
	)
}

func (m Model) renderPanel(st submission.State, width int) string {
	var content string
	if p, busy := present.PanelFor(st).(present.Busy); busy {
		content = m.spinner.View() + " " + m.styles.Body.Render(p.Text)
	} else {
		content = m.viewport.View()
	}

	style := m.styles.Panel
	if width > ui.PanelBorderWidth*2 {
		style = style.Width(width - ui.PanelBorderWidth*2)
	}
	return style.Render(content)
}
