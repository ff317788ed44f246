package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/samber/lo"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

// Markdown renders cfg as a markdown table for one-shot output.
func Markdown(cfg avatar.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", lo.Ternary(cfg.Name == "", cfg.ID, cfg.Name))
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| ID | `%s` |\n", cfg.ID)
	fmt.Fprintf(&b, "| Color | `%s` |\n", cfg.Color)
	fmt.Fprintf(&b, "| Rotation | %s rad/s |\n", formatFloat(cfg.RotationSpeed))
	fmt.Fprintf(&b, "| Scale | %s |\n", formatFloat(cfg.Scale))
	fmt.Fprintf(&b, "| Position | (%s, %s, %s) |\n",
		formatFloat(cfg.Position.X), formatFloat(cfg.Position.Y), formatFloat(cfg.Position.Z))
	fmt.Fprintf(&b, "| Visible | %s |\n", lo.Ternary(cfg.Visible, "yes", "no"))
	return b.String()
}

// RenderMarkdown renders md for a terminal with the named glamour style.
func RenderMarkdown(md, style string) (string, error) {
	if style == "" {
		style = "dark"
	}
	return glamour.Render(md, style)
}
