// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ballistic/internal/cli/styles"
	"github.com/bnema/ballistic/internal/domain/physics"
)

const (
	defaultTrailLength = 400
	minInterval        = 5 * time.Millisecond
	maxInterval        = time.Second
	plotWidth          = 64
	plotHeight         = 16
)

// TrajectoryModel replays the animation loop in the terminal, one frame per
// tick, and plots the side view (x against z) of the shot.
type TrajectoryModel struct {
	sim      *physics.Simulator
	trail    []physics.Frame
	maxTrail int
	interval time.Duration
	paused   bool
	// tickGen tags the live tick chain; ticks from older chains are dropped.
	tickGen  int
	showHelp bool
	width    int

	keys  styles.TrajectoryKeyMap
	help  help.Model
	theme *styles.Theme
}

// NewTrajectoryModel creates a live model ticking every physics.FrameStep.
func NewTrajectoryModel(theme *styles.Theme, params physics.Params) TrajectoryModel {
	return TrajectoryModel{
		sim:      physics.NewSimulator(params),
		maxTrail: defaultTrailLength,
		interval: time.Duration(physics.FrameStep * float64(time.Second)),
		keys:     styles.DefaultTrajectoryKeyMap(),
		help:     styles.NewStyledHelp(theme),
		theme:    theme,
		width:    80,
	}
}

// frameTickMsg drives the animation.
type frameTickMsg struct {
	gen int
	at  time.Time
}

func (m TrajectoryModel) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameTickMsg{gen: gen, at: t}
	})
}

// Init implements tea.Model.
func (m TrajectoryModel) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m TrajectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case frameTickMsg:
		if m.paused || msg.gen != m.tickGen {
			return m, nil
		}
		m.advance()
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if !m.paused {
				m.tickGen++
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Step):
			if m.paused {
				m.advance()
			}
		case key.Matches(msg, m.keys.Reset):
			m.sim.Reset()
			m.trail = nil
		case key.Matches(msg, m.keys.Faster):
			m.interval = max(m.interval/2, minInterval)
		case key.Matches(msg, m.keys.Slower):
			m.interval = min(m.interval*2, maxInterval)
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		}
	}

	return m, nil
}

func (m *TrajectoryModel) advance() {
	m.trail = append(m.trail, m.sim.Step())
	if len(m.trail) > m.maxTrail {
		m.trail = m.trail[len(m.trail)-m.maxTrail:]
	}
}

// Frames returns the frames currently on the trail.
func (m TrajectoryModel) Frames() []physics.Frame {
	return m.trail
}

// Paused reports whether the animation is paused.
func (m TrajectoryModel) Paused() bool {
	return m.paused
}

// Interval returns the current tick interval.
func (m TrajectoryModel) Interval() time.Duration {
	return m.interval
}

// View implements tea.Model.
func (m TrajectoryModel) View() string {
	t := m.theme
	p := m.sim.Params()

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		t.Title.Render(styles.IconTarget+" Trajectory"),
		"  ",
		t.BadgeMuted.Render(fmt.Sprintf("wind %g @ %g°", p.WindSpeed, p.WindDir)),
		" ",
		t.BadgeMuted.Render(fmt.Sprintf("bullet %g", p.BulletSpeed)),
		" ",
		t.BadgeMuted.Render(fmt.Sprintf("g %g", p.Gravity)),
	)

	status := t.Subtle.Render("waiting for first frame")
	if n := len(m.trail); n > 0 {
		f := m.trail[n-1]
		status = fmt.Sprintf("%s  t=%.2f  x=%.3f  y=%.3f  z=%.3f",
			t.Highlight.Render(fmt.Sprintf("frame %d", f.Index)),
			f.T, f.Position.X(), f.Position.Y(), f.Position.Z())
	}
	if m.paused {
		status += "  " + t.WarningStyle.Render("paused")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		t.Field.Render(m.plot()),
		status,
		"",
		m.help.View(m.keys),
	)
}

// plot renders the trail on an x/z grid scaled to the trail's bounds.
// The ground line (z = 0) is drawn when it is in range.
func (m TrajectoryModel) plot() string {
	grid := make([][]rune, plotHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}
	if len(m.trail) == 0 {
		return renderGrid(grid)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := 0.0, 0.0
	for _, f := range m.trail {
		minX = math.Min(minX, f.Position.X())
		maxX = math.Max(maxX, f.Position.X())
		minZ = math.Min(minZ, f.Position.Z())
		maxZ = math.Max(maxZ, f.Position.Z())
	}

	col := func(x float64) int { return scale(x, minX, maxX, plotWidth) }
	row := func(z float64) int { return plotHeight - 1 - scale(z, minZ, maxZ, plotHeight) }

	ground := row(0)
	for c := range grid[ground] {
		grid[ground][c] = '─'
	}
	for i, f := range m.trail {
		mark := '·'
		if i == len(m.trail)-1 {
			mark = '●'
		}
		grid[row(f.Position.Z())][col(f.Position.X())] = mark
	}
	return renderGrid(grid)
}

func scale(v, lo, hi float64, cells int) int {
	if hi-lo < 1e-12 {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(cells-1))
	return min(max(i, 0), cells-1)
}

func renderGrid(grid [][]rune) string {
	lines := make([]string, len(grid))
	for i, r := range grid {
		lines[i] = string(r)
	}
	return strings.Join(lines, "\n")
}

// Ensure interface compliance.
var _ tea.Model = (*TrajectoryModel)(nil)
