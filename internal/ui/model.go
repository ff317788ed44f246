// Package ui is the interactive terminal surface for a running synchronizer.
// It shows the avatar's name and spin, a talk toggle and the current
// configuration, and keeps the last good values on screen when refreshes fail.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

const frameInterval = 100 * time.Millisecond

// Source is what the surface reads from and pokes.
type Source interface {
	Snapshot() settings.State
	Refresh() bool
}

// StateMsg carries a new synchronizer state into the program.
type StateMsg struct {
	State settings.State
}

type frameMsg time.Time

type model struct {
	src     Source
	baseURL string
	styles  styles

	state   settings.State
	started time.Time
	now     time.Time

	talking   bool
	talkSince time.Time
	width     int
}

func newModel(src Source, baseURL string, now time.Time) model {
	return model{
		src:     src,
		baseURL: baseURL,
		styles:  defaultStyles(),
		state:   src.Snapshot(),
		started: now,
		now:     now,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.snapshotCmd(), frame())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case StateMsg:
		m.state = msg.State
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		return m, frame()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t", " ":
			m.talking = !m.talking
			m.talkSince = m.now
		case "r":
			// Refresh takes the synchronizer lock; run it off the event loop.
			return m, m.refreshCmd()
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.talkButton())
	b.WriteString("\n\n")

	if m.state.Config != nil {
		b.WriteString(m.panel(*m.state.Config))
		b.WriteString("\n")
	}
	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("t/space talk • r refresh • q quit"))
	return b.String()
}

func (m model) header() string {
	cfg := m.state.Config
	if cfg == nil {
		return m.styles.title.Render("Avatar Config")
	}

	name := lipgloss.NewStyle().Bold(true).Foreground(accent(cfg)).Render(cfg.Name)
	if col, ok := cfg.HexColor(); ok {
		name = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.Color(col.Hex())).
			Foreground(contrast(col)).
			Render(cfg.Name)
	}
	yaw := cfg.Yaw(m.now.Sub(m.started)) * 180 / math.Pi
	parts := []string{
		name,
		m.styles.label.Render(fmt.Sprintf("yaw %5.1f°", yaw)),
	}
	if !cfg.Visible {
		parts = append(parts, m.styles.label.Render("(hidden)"))
	}
	return strings.Join(parts, "  ")
}

func (m model) talkButton() string {
	label := lo.Ternary(m.talking, "■ Stop", "▶ Talk")
	bg := lo.Ternary(m.talking, colorTalking, colorIdle)
	btn := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(bg).
		Padding(0, 2).
		Render(label)

	if !m.talking {
		return btn
	}
	v := avatar.TalkVolume(m.now.Sub(m.talkSince))
	return btn + " " + lipgloss.NewStyle().Foreground(colorTalking).Render(meter(v, 12))
}

func (m model) panel(cfg avatar.Config) string {
	row := func(label, value string) string {
		return m.styles.label.Render(label+":") + " " + m.styles.value.Render(value)
	}

	visible := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lo.Ternary(cfg.Visible, colorOK, colorBad)).
		Background(lo.Ternary(cfg.Visible, colorOKBg, colorBadBg)).
		Render(lo.Ternary(cfg.Visible, "true", "false"))

	lines := []string{
		m.styles.title.Render("AVATAR CONFIG"),
		row("ID", cfg.ID),
		row("Name", cfg.Name),
		m.styles.label.Render("Color:") + " " + swatch(cfg),
		row("Rotation", formatFloat(cfg.RotationSpeed)+" rad/s"),
		row("Scale", formatFloat(cfg.Scale)),
		row("Position", fmt.Sprintf("(%s, %s, %s)",
			formatFloat(cfg.Position.X), formatFloat(cfg.Position.Y), formatFloat(cfg.Position.Z))),
		m.styles.label.Render("Visible:") + " " + visible,
	}
	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m model) statusLine() string {
	switch {
	case m.state.IsLoading:
		return m.styles.status.Render("Loading avatar config…")
	case m.state.IsError && m.state.Config == nil:
		return m.styles.errLine.Render(fmt.Sprintf("Could not reach the backend at %s. Check that it is running.", m.baseURL))
	case m.state.IsError:
		return m.styles.errLine.Render("Refresh failed, showing the last known config.")
	}
	return ""
}

func (m model) snapshotCmd() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		return StateMsg{State: src.Snapshot()}
	}
}

func (m model) refreshCmd() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		src.Refresh()
		return nil
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// formatFloat prints integers without a fraction, like a JSON number.
func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
