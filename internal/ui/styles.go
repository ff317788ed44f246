package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

var (
	colorText    = lipgloss.Color("#e5e7eb")
	colorMuted   = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#1f2937")
	colorIdle    = lipgloss.Color("#4f46e5")
	colorTalking = lipgloss.Color("#ef4444")
	colorOK      = lipgloss.Color("#6ee7b7")
	colorOKBg    = lipgloss.Color("#064e3b")
	colorBadBg   = lipgloss.Color("#7f1d1d")
	colorBad     = lipgloss.Color("#fca5a5")
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	panel   lipgloss.Style
	status  lipgloss.Style
	errLine lipgloss.Style
	help    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorText),
		label:   lipgloss.NewStyle().Foreground(colorMuted),
		value:   lipgloss.NewStyle().Foreground(colorText),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		status:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		errLine: lipgloss.NewStyle().Foreground(colorBad),
		help:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// swatch renders a filled block in the avatar color followed by the literal.
// Colors that are not hex literals are shown as text only.
func swatch(cfg avatar.Config) string {
	col, ok := cfg.HexColor()
	if !ok {
		return cfg.Color
	}
	block := lipgloss.NewStyle().Background(lipgloss.Color(col.Hex())).Render("  ")
	return block + " " + cfg.Color
}

// accent returns the avatar color for headings, falling back to the idle color.
func accent(cfg *avatar.Config) lipgloss.Color {
	if cfg == nil {
		return colorIdle
	}
	if col, ok := cfg.HexColor(); ok {
		return lipgloss.Color(col.Hex())
	}
	return colorIdle
}

// contrast picks black or white text for a background color.
func contrast(bg colorful.Color) lipgloss.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

// meter draws a bar of width cells filled to v in [0, 1].
func meter(v float64, width int) string {
	n := int(v*float64(width) + 0.5)
	if n > width {
		n = width
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
