package model

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/cli/styles"
	"github.com/bnema/ballistic/internal/domain/physics"
)

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m TrajectoryModel, msg tea.Msg) (TrajectoryModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(TrajectoryModel)
	require.True(t, ok)
	return tm, cmd
}

func currentTick(m TrajectoryModel) frameTickMsg {
	return frameTickMsg{gen: m.tickGen, at: time.Now()}
}

func TestTrajectoryModel_TickAdvancesOneFrame(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())
	assert.Equal(t, 50*time.Millisecond, m.Interval())

	var cmd tea.Cmd
	for range 20 {
		m, cmd = update(t, m, currentTick(m))
		assert.NotNil(t, cmd)
	}

	frames := m.Frames()
	require.Len(t, frames, 20)
	last := frames[19]
	assert.Equal(t, 20, last.Index)
	assert.InDelta(t, 61.5, last.Position.X(), 1e-9)
	assert.InDelta(t, 5.095, last.Position.Z(), 1e-9)
	assert.Contains(t, m.View(), "frame 20")
}

func TestTrajectoryModel_PauseStepReset(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())

	m, _ = update(t, m, keyMsg(" "))
	assert.True(t, m.Paused())

	m, cmd := update(t, m, currentTick(m))
	assert.Nil(t, cmd)
	assert.Empty(t, m.Frames())

	m, _ = update(t, m, keyMsg("n"))
	m, _ = update(t, m, keyMsg("n"))
	assert.Len(t, m.Frames(), 2)
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, keyMsg("r"))
	assert.Empty(t, m.Frames())

	m, cmd = update(t, m, keyMsg("p"))
	assert.False(t, m.Paused())
	assert.NotNil(t, cmd)

	m, _ = update(t, m, currentTick(m))
	require.Len(t, m.Frames(), 1)
	assert.Equal(t, 1, m.Frames()[0].Index)
}

func TestTrajectoryModel_QuickPauseKeepsOneTickChain(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())
	pending := currentTick(m)

	m, _ = update(t, m, keyMsg(" "))
	m, cmd := update(t, m, keyMsg(" "))
	require.False(t, m.Paused())
	require.NotNil(t, cmd)

	// The tick scheduled before the pause arrives after the resume.
	m, next := update(t, m, pending)
	assert.Nil(t, next)
	assert.Empty(t, m.Frames())

	resumed, ok := cmd().(frameTickMsg)
	require.True(t, ok)
	m, next = update(t, m, resumed)
	assert.NotNil(t, next)
	require.Len(t, m.Frames(), 1)
}

func TestTrajectoryModel_SpeedBounds(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())

	for range 10 {
		m, _ = update(t, m, keyMsg("+"))
	}
	assert.Equal(t, minInterval, m.Interval())

	for range 10 {
		m, _ = update(t, m, keyMsg("-"))
	}
	assert.Equal(t, maxInterval, m.Interval())
}

func TestTrajectoryModel_TrailIsBounded(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())
	m.maxTrail = 5

	for range 12 {
		m, _ = update(t, m, currentTick(m))
	}
	frames := m.Frames()
	require.Len(t, frames, 5)
	assert.Equal(t, 8, frames[0].Index)
	assert.Equal(t, 12, frames[4].Index)
}

func TestTrajectoryModel_Quit(t *testing.T) {
	m := NewTrajectoryModel(styles.NewTheme(), physics.DefaultParams())
	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestScale(t *testing.T) {
	assert.Equal(t, 0, scale(1, 1, 1, 10))
	assert.Equal(t, 0, scale(0, 0, 10, 11))
	assert.Equal(t, 10, scale(10, 0, 10, 11))
	assert.Equal(t, 5, scale(5, 0, 10, 11))
}
