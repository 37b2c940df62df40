package ui

import (
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/picking"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeMusic struct{ muted bool }

func (f *fakeMusic) ToggleMute() bool { f.muted = !f.muted; return f.muted }
func (f *fakeMusic) Muted() bool      { return f.muted }

func newModel(t *testing.T, music Music) Model {
	t.Helper()
	m, err := New(Options{
		Config: config.DefaultConfig(),
		Music:  music,
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Clock:  func() time.Time { return t0 },
	})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func sized(t *testing.T, music Music) Model {
	t.Helper()
	m, _ := update(t, newModel(t, music), tea.WindowSizeMsg{Width: 80, Height: 26})
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pending(t *testing.T, m Model) anim.Handle {
	t.Helper()
	h, ok := m.scheduler.Pending()
	require.True(t, ok, "no frame pending")
	return h
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestResizeSetsCanvasAndAspect(t *testing.T) {
	m := newModel(t, nil)
	assert.Equal(t, "Initializing...", m.View())

	m = sized(t, nil)
	assert.Equal(t, 80, m.renderer.Viewport().Width)
	assert.Equal(t, 24, m.renderer.Viewport().Height)
	assert.InDelta(t, 80.0/48.0, m.cam.Aspect, 1e-9)
	assert.Equal(t, m.renderer.Viewport(), m.picker.Viewport)

	view := m.View()
	assert.Contains(t, view, "[p] Pause")
	assert.Contains(t, view, "q: quit")
	assert.NotContains(t, view, "Mute music", "no music, no button")
}

func TestInitSchedulesOneFrame(t *testing.T) {
	m := sized(t, nil)
	cmd := m.Init()
	require.NotNil(t, cmd)

	assert.Equal(t, anim.Handle(1), pending(t, m))
	m.scheduler.Start()
	assert.Equal(t, anim.Handle(1), pending(t, m), "start is idempotent")
}

func TestFrameMsgAdvancesScene(t *testing.T) {
	m := sized(t, nil)
	m.Init()
	h := pending(t, m)

	m, cmd := update(t, m, FrameMsg{Handle: h, Time: t0.Add(time.Second)})
	assert.NotNil(t, cmd, "next frame scheduled")
	assert.Equal(t, uint64(1), m.state.Frames)
	assert.Equal(t, 1000.0, m.state.Timestamp)
	assert.NotEqual(t, h, pending(t, m))

	m, _ = update(t, m, FrameMsg{Handle: h, Time: t0.Add(2 * time.Second)})
	assert.Equal(t, uint64(1), m.state.Frames, "stale frame ignored")
	assert.Contains(t, m.View(), "t=1.0s")
}

func TestPauseKeyFreezesSimulation(t *testing.T) {
	m := sized(t, nil)
	m.Init()

	m, _ = update(t, m, key(" "))
	assert.True(t, m.scheduler.Paused())
	assert.True(t, m.overlay.pauseLabelled)
	assert.Contains(t, m.View(), "[p] Resume")

	m, _ = update(t, m, FrameMsg{Handle: pending(t, m), Time: t0.Add(time.Second)})
	assert.Equal(t, uint64(1), m.state.Frames, "still ticking")
	assert.Zero(t, m.state.Timestamp)

	m, _ = update(t, m, key("p"))
	assert.False(t, m.scheduler.Paused())
	assert.False(t, m.overlay.pauseLabelled)
}

func TestControlBarClick(t *testing.T) {
	m := sized(t, &fakeMusic{})
	assert.Equal(t, "p", m.buttonAt(2))
	assert.Equal(t, "", m.buttonAt(0))
	assert.Equal(t, "", m.buttonAt(79))

	m, _ = update(t, m, tea.MouseMsg{X: 4, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.scheduler.Paused())
	_, ok := m.scheduler.Pending()
	assert.True(t, ok, "pausing re-arms a stopped loop")
}

func TestHoverPinAndDismiss(t *testing.T) {
	m := sized(t, nil)
	tip := m.state.Tooltip

	// Canvas cell (40, 12) is the sun; the control bar shifts it down a row.
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 13, Action: tea.MouseActionMotion})
	require.Equal(t, picking.HoverVisible, tip.State())
	assert.Equal(t, "Sun", tip.Body().Name)
	assert.Equal(t, picking.Point{X: 42, Y: 13}, m.overlay.anchor)
	assert.True(t, m.overlay.tooltipShown)
	assert.Same(t, tip.Body(), m.renderer.Highlight)

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 13, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, picking.Pinned, tip.State())
	assert.Equal(t, "Sun", m.overlay.panel)

	m.renderNow()
	assert.Contains(t, m.View(), "SUN")
	assert.Contains(t, m.View(), "Type: Star")

	// Moving while pinned changes nothing.
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})
	assert.Equal(t, picking.Pinned, tip.State())

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, picking.Hidden, tip.State())
	assert.Empty(t, m.overlay.panel)
	assert.False(t, m.overlay.tooltipShown)
	assert.Nil(t, m.renderer.Highlight)
}

func TestDetailPanelTakesClicks(t *testing.T) {
	m := sized(t, nil)
	tip := m.state.Tooltip

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 13, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, picking.Pinned, tip.State())

	area, ok := m.overlay.panelArea(80)
	require.True(t, ok)
	assert.Equal(t, 80, area.X+area.W, "pinned to the right edge")
	assert.Zero(t, area.Y)

	// Empty space under the panel does not dismiss it.
	m, _ = update(t, m, tea.MouseMsg{X: 79, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, picking.Pinned, tip.State())
	assert.Equal(t, "Sun", m.overlay.panel)

	m, _ = update(t, m, tea.MouseMsg{X: area.X - 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, picking.Hidden, tip.State())
	_, ok = m.overlay.panelArea(80)
	assert.False(t, ok)
}

func TestTooltipAreaStaysOnCanvas(t *testing.T) {
	m := sized(t, nil)
	tip := m.state.Tooltip
	earth, _ := m.state.Registry.Lookup("Earth")

	tip.Move(picking.Point{X: 78, Y: 22}, earth)
	area := tip.Area()
	assert.LessOrEqual(t, area.X+area.W, 80)
	assert.LessOrEqual(t, area.Y+area.H, 24)
}

func TestFocusTransition(t *testing.T) {
	m := sized(t, nil)

	m, cmd := update(t, m, key("f"))
	assert.NotNil(t, cmd)
	require.True(t, m.transition.Active())
	h, _ := m.transition.Pending()

	m, _ = update(t, m, TransitionMsg{Handle: h, Time: t0.Add(450 * time.Millisecond)})
	assert.InDelta(t, 70, m.cam.Position.Z, 1e-9)
	assert.True(t, m.transition.Active())

	h, _ = m.transition.Pending()
	m, _ = update(t, m, TransitionMsg{Handle: h, Time: t0.Add(900 * time.Millisecond)})
	assert.Equal(t, astro.Vec3{Z: 40}, m.cam.Position)
	assert.Equal(t, astro.Origin, m.cam.Target)
	assert.False(t, m.transition.Active())
	assert.Contains(t, m.View(), "focusing Sun")
}

func TestResetReplacesTransition(t *testing.T) {
	m := sized(t, nil)
	m, _ = update(t, m, key("f"))
	stale, _ := m.transition.Pending()

	m, _ = update(t, m, key("r"))
	h, _ := m.transition.Pending()
	assert.NotEqual(t, stale, h)

	m, _ = update(t, m, TransitionMsg{Handle: stale, Time: t0.Add(time.Second)})
	assert.True(t, m.transition.Active(), "stale focus frame ignored")

	m, _ = update(t, m, TransitionMsg{Handle: h, Time: t0})
	assert.Equal(t, astro.Vec3{Z: 100}, m.cam.Position)
	assert.False(t, m.transition.Active())
}

func TestKeyboardZoomAndOrbit(t *testing.T) {
	m := sized(t, nil)
	m.Init()

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m, _ = update(t, m, FrameMsg{Handle: pending(t, m), Time: t0})
	assert.InDelta(t, 90, m.cam.Distance(), 1e-9)

	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, FrameMsg{Handle: pending(t, m), Time: t0})
	assert.InDelta(t, 100, m.cam.Distance(), 1e-9)

	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, FrameMsg{Handle: pending(t, m), Time: t0})
	assert.Greater(t, m.cam.Position.X, 0.0)
	assert.InDelta(t, 100, m.cam.Distance(), 1e-9)
}

func TestSpawnGatedByPause(t *testing.T) {
	m := sized(t, nil)
	m.state.Effects.Stars.SetRate(1, 3)

	m, cmd := update(t, m, SpawnMsg{Kind: effects.KindShootingStar})
	assert.NotNil(t, cmd, "spawn timer keeps running")
	assert.Equal(t, 3, m.state.Effects.Len())

	m, _ = update(t, m, key("p"))
	m, cmd = update(t, m, SpawnMsg{Kind: effects.KindShootingStar})
	assert.NotNil(t, cmd)
	assert.Equal(t, 3, m.state.Effects.Len())
}

func TestDisabledPopulationHasNoTimer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Effects.Comets.Enabled = false
	m, err := New(Options{Config: cfg, Rand: rand.New(rand.NewPCG(3, 4))})
	require.NoError(t, err)

	assert.Nil(t, m.spawnTick(effects.KindComet))
	assert.NotNil(t, m.spawnTick(effects.KindShootingStar))
}

func TestMute(t *testing.T) {
	music := &fakeMusic{}
	m := sized(t, music)
	assert.Contains(t, m.View(), "[m] Mute music")

	m, _ = update(t, m, key("m"))
	assert.True(t, music.muted)
	assert.Contains(t, m.View(), "[m] Unmute music")

	silent := sized(t, nil)
	silent, _ = update(t, silent, key("m"))
	assert.Contains(t, silent.View(), "audio unavailable")
}

func TestQuit(t *testing.T) {
	m := sized(t, nil)
	m.Init()

	m, cmd := update(t, m, key("q"))
	assert.True(t, isQuit(cmd))
	_, ok := m.scheduler.Pending()
	assert.False(t, ok)
}

func TestTeaFramesQueuesTicks(t *testing.T) {
	f := newTeaFrames(time.Millisecond, frameMsg)
	assert.Equal(t, anim.Handle(1), f.ScheduleNext())
	assert.Equal(t, anim.Handle(2), f.ScheduleNext())
	f.Cancel(1)

	cmds := f.drain()
	require.Len(t, cmds, 2)
	assert.Empty(t, f.drain())

	msg, ok := cmds[1]().(FrameMsg)
	require.True(t, ok)
	assert.Equal(t, anim.Handle(2), msg.Handle)
}
