// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for panel sizing
const (
	// Split pane dimensions
	SplitPaneLeftRatio = 0.5
	SplitPaneDivider   = 1

	// Panel borders and spacing
	PanelBorderWidth = 1
	PanelPaddingH    = 1
	PanelPaddingV    = 0

	// Form
	LabelWidth = 18

	// Control areas
	HeaderHeight = 3
	BannerHeight = 1
	FooterHeight = 2

	// Responsive breakpoints
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 20
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	// IsCompact stacks the form above the panel instead of side by side.
	IsCompact bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// TooSmall reports whether a known terminal size is below the minimum the
// form can be drawn in. A zero size means the size is not known yet.
func (l LayoutConfig) TooSmall() bool {
	if l.TerminalWidth <= 0 || l.TerminalHeight <= 0 {
		return false
	}
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}

// BodyHeight returns the rows left after header, banner and footer.
func (l LayoutConfig) BodyHeight() int {
	return clamp(l.TerminalHeight - HeaderHeight - BannerHeight - FooterHeight)
}

// PaneWidths returns the form and panel widths. In compact mode both span
// the full terminal.
func (l LayoutConfig) PaneWidths() (form, panel int) {
	if l.IsCompact {
		return l.TerminalWidth, l.TerminalWidth
	}
	return SplitPaneWidths(l.TerminalWidth)
}

// SplitPaneWidths calculates left and right pane widths for a split view
func SplitPaneWidths(totalWidth int) (leftWidth, rightWidth int) {
	leftWidth = int(float64(totalWidth) * SplitPaneLeftRatio)
	rightWidth = clamp(totalWidth - leftWidth - SplitPaneDivider)
	return
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return clamp(panelWidth - (PanelBorderWidth * 2) - (PanelPaddingH * 2))
}

// PanelContentHeight returns the content height inside a bordered panel
func PanelContentHeight(panelHeight int) int {
	return clamp(panelHeight - (PanelBorderWidth * 2) - (PanelPaddingV * 2))
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
