// Package tui is a terminal monitor for the controller session.
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PixPMusic/gopher-mpd/internal/engine"
	"github.com/PixPMusic/gopher-mpd/internal/host"
	"github.com/PixPMusic/gopher-mpd/internal/mpd"
)

// barWidth is the width of knob and slider bars in cells
const barWidth = 16

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	hintStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#e0a040"))
	heldStyle   = lipgloss.NewStyle().Reverse(true).Bold(true)
	lastStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c1a"))
	lockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1f8fd4"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4c4"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// SnapshotMsg delivers a new session snapshot
type SnapshotMsg mpd.Snapshot

// PanelMsg delivers a new host panel state
type PanelMsg host.PanelState

// Model renders the latest snapshot and panel state.
type Model struct {
	feed      *Feed
	cycleMode func()

	snap     mpd.Snapshot
	panel    host.PanelState
	haveSnap bool
	quitting bool
}

// NewModel creates a model reading from feed. cycleMode is called when the
// user presses m and may be nil.
func NewModel(feed *Feed, cycleMode func()) Model {
	return Model{feed: feed, cycleMode: cycleMode}
}

func listenSnapshots(ch <-chan mpd.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg(<-ch)
	}
}

func listenPanels(ch <-chan host.PanelState) tea.Cmd {
	return func() tea.Msg {
		return PanelMsg(<-ch)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenSnapshots(m.feed.Snapshots),
		listenPanels(m.feed.Panels),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "m":
			if m.cycleMode != nil {
				m.cycleMode()
			}
		}

	case SnapshotMsg:
		m.snap = mpd.Snapshot(msg)
		m.haveSnap = true
		return m, listenSnapshots(m.feed.Snapshots)

	case PanelMsg:
		m.panel = host.PanelState(msg)
		return m, listenPanels(m.feed.Panels)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.haveSnap {
		return statusStyle.Render("waiting for controller...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	left := boxStyle.Render(m.padGrid())
	right := boxStyle.Render(m.controls())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	b.WriteString(m.buttons())
	b.WriteString("\n")
	b.WriteString(m.hostLine())
	b.WriteString("\n")
	if m.panel.Hint != "" {
		b.WriteString(hintStyle.Render(m.panel.Hint))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("m: next mode  q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	lock := dimStyle.Render("locked")
	if m.snap.Unlocked {
		lock = lockStyle.Render("UNLOCKED")
	}
	return fmt.Sprintf("%s %s  port %d  mode %s  remap %s",
		beatMark(m.panel.Beat),
		titleStyle.Render(m.snap.Model),
		m.snap.Port,
		titleStyle.Render(m.snap.Mode.String()),
		lock,
	)
}

func beatMark(v int) string {
	switch v {
	case engine.BeatBar:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#e03030")).Render("●")
	case engine.Beat:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#30c040")).Render("●")
	}
	return dimStyle.Render("○")
}

func (m Model) padGrid() string {
	rows := make([]string, 0, len(mpd.MPD226PadGrid))
	for _, row := range mpd.MPD226PadGrid {
		cells := make([]string, 0, len(row))
		for _, n := range row {
			pad, _ := m.snap.Input(mpd.Pad, n)
			cells = append(cells, m.padCell(pad))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func (m Model) padCell(pad mpd.Input) string {
	text := fmt.Sprintf("%3d", pad.Number)
	switch {
	case pad.Pressed:
		return heldStyle.Render(text)
	case m.snap.Unlocked && slices.Contains(mpd.DefaultLockPads, pad.Number):
		return lockStyle.Render(text)
	case pad.Number == m.snap.LastPad:
		return lastStyle.Render(text)
	}
	return dimStyle.Render(text)
}

func (m Model) controls() string {
	var lines []string
	for _, t := range []mpd.InputType{mpd.Knob, mpd.Slider} {
		for _, in := range m.snap.Inputs[t] {
			lines = append(lines, fmt.Sprintf("%-8s %s %3d", in.Name, bar(in.Normalized(), barWidth), in.Value))
		}
	}
	return strings.Join(lines, "\n")
}

// bar draws v in [0,1] as a filled gauge of width cells
func bar(v float64, width int) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*float64(width) + 0.5)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) buttons() string {
	var parts []string
	for _, t := range []mpd.InputType{mpd.Switch, mpd.Transport} {
		for _, in := range m.snap.Inputs[t] {
			mark := dimStyle.Render("○")
			if in.On {
				mark = titleStyle.Render("●")
			}
			parts = append(parts, mark+" "+in.Name)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) hostLine() string {
	if len(m.panel.Volumes) == 0 {
		return statusStyle.Render("no host")
	}
	var vol float64
	if t := m.panel.CurrentTrack; t >= 0 && t < len(m.panel.Volumes) {
		vol = m.panel.Volumes[t]
	}
	return statusStyle.Render(fmt.Sprintf("focus %s  track %d  volume %.2f  cursor %d",
		m.panel.FocusedName(), m.panel.CurrentTrack+1, vol, m.panel.Cursor))
}
