// Package ui provides the visual styling for the coach terminal UI.
// Light and dark palettes share the same semantic colors so banner tones read
// the same on both.
package ui

import (
	"os"
	"strconv"
	"strings"

	"playcoach/internal/present"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f7f5ef") // chalk
	LightForeground = lipgloss.Color("#1b2a1f")
	LightPrimary    = lipgloss.Color("#1f5130") // outfield green
	LightAccent     = lipgloss.Color("#b5562b") // infield clay
	LightMuted      = lipgloss.Color("#8a8f87")
	LightBorder     = lipgloss.Color("#d8d4c7")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#111a14")
	DarkForeground = lipgloss.Color("#eeece4")
	DarkPrimary    = lipgloss.Color("#7dc48f")
	DarkAccent     = lipgloss.Color("#e08a5c")
	DarkMuted      = lipgloss.Color("#6f7a70")
	DarkBorder     = lipgloss.Color("#2d3b31")
	DarkCard       = lipgloss.Color("#18241b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme reads the terminal's COLORFGBG hint and defaults to light mode.
// Explicit choices go through the ui.theme setting (COACH_THEME).
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; ANSI 0-6 and 8 are dark backgrounds.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// ResolveTheme maps a configured theme name to a Theme. "auto" and unknown
// names fall back to detection.
func ResolveTheme(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Form
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Hint         lipgloss.Style
	Warning      lipgloss.Style

	// Buttons
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Banner tones
	BannerReady lipgloss.Style
	BannerInfo  lipgloss.Style
	BannerError lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	banner := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(PanelPaddingV, PanelPaddingH),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Width(LabelWidth),

		FocusedLabel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Width(LabelWidth),

		Hint: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Button: button.
			Foreground(theme.Foreground).
			Background(theme.Card),

		ButtonFocused: button.
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Accent).
			Bold(true),

		ButtonDisabled: button.
			Foreground(theme.Muted).
			Strikethrough(true),

		BannerReady: banner.Foreground(Success),
		BannerInfo:  banner.Foreground(Info),
		BannerError: banner.Foreground(Destructive),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// BannerStyle returns the style for a banner tone.
func (s Styles) BannerStyle(tone present.Tone) lipgloss.Style {
	switch tone {
	case present.ToneError:
		return s.BannerError
	case present.ToneInfo:
		return s.BannerInfo
	default:
		return s.BannerReady
	}
}

// BannerIcon returns the leading glyph for a banner tone.
func BannerIcon(tone present.Tone) string {
	switch tone {
	case present.ToneError:
		return "!"
	case present.ToneInfo:
		return "…"
	default:
		return "✓"
	}
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 0 {
		width = 0
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
