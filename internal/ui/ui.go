// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/kinematics"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/picking"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/version"
)

// Screen rows outside the scene canvas.
const (
	headerHeight = 1
	footerHeight = 1
)

// Keyboard camera steps.
const (
	orbitStep = 0.15
	zoomIn    = 0.9
	zoomOut   = 1 / zoomIn
)

// Music is the background track control.
type Music interface {
	ToggleMute() bool
	Muted() bool
}

// Options wires a Model.
type Options struct {
	Config *config.Config
	Logger *logging.Logger
	Music  Music            // nil when audio is off
	Rand   effects.Rand     // transient spawning; seeded from the clock if nil
	Clock  func() time.Time // defaults to time.Now
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg   *config.Config
	log   *logging.Logger
	music Music
	clock func() time.Time
	start time.Time

	state      *scene.State
	cam        *camera.Camera
	controls   *camera.OrbitControls
	renderer   *render.Terminal
	picker     *picking.Picker
	scheduler  *anim.Scheduler
	transition *anim.Transition
	frames     *teaFrames
	camFrames  *teaFrames
	overlay    *overlay

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
}

// New builds the scene and its animation loop.
func New(o Options) (Model, error) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := o.Logger
	if log == nil {
		log = logging.Discard()
	}
	clock := o.Clock
	if clock == nil {
		clock = time.Now
	}
	rng := o.Rand
	if rng == nil {
		seed := uint64(clock().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	registry, err := body.SolarSystem(cfg.Kinematics.RotationIncrement)
	if err != nil {
		return Model{}, fmt.Errorf("failed to build solar system: %w", err)
	}

	stars := effects.DefaultShootingStars()
	applySpawn(&stars, cfg.Effects.ShootingStars)
	comets := effects.DefaultComets()
	applySpawn(&comets, cfg.Effects.Comets)

	ov := &overlay{registry: registry}
	tip := picking.NewTooltip(ov, picking.BoxSize)
	params := kinematics.NewParams(cfg.Kinematics.OrbitSpeedScale, cfg.Kinematics.NominalFrame.D())
	st := scene.New(registry, effects.NewManager(stars, comets, rng), tip, params)

	cam := camera.New(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, cfg.Camera.StartDistance)
	controls := camera.NewOrbitControls(cam, cfg.Camera.MinDistance, cfg.Camera.MaxDistance, cfg.Camera.Damping)

	renderer := render.NewTerminal(render.DefaultOptions())
	renderer.Overlays = []render.Overlay{ov}

	frames := newTeaFrames(cfg.Frame.Interval.D(), frameMsg)
	camFrames := newTeaFrames(cfg.Frame.Interval.D(), transitionMsg)

	m := Model{
		cfg:      cfg,
		log:      log,
		music:    o.Music,
		clock:    clock,
		start:    clock(),
		state:    st,
		cam:      cam,
		controls: controls,
		renderer: renderer,
		picker: &picking.Picker{
			Camera:      cam,
			Intersector: renderer,
		},
		transition: anim.NewTransition(camFrames, controls, cam),
		frames:     frames,
		camFrames:  camFrames,
		overlay:    ov,
	}
	m.scheduler = anim.NewScheduler(anim.Options{
		State:    st,
		Frames:   frames,
		Controls: controls,
		Camera:   cam,
		Renderer: renderer,
		Label:    ov,
	})
	return m, nil
}

func applySpawn(spec *effects.Spec, c config.SpawnConfig) {
	spec.Interval = c.Interval.D()
	spec.Probability = c.Probability
	spec.Batch = c.Batch
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.log.Info("ls-orrery v%s starting", version.Version)
	m.scheduler.Start()

	cmds := m.frames.drain()
	for _, k := range []effects.Kind{effects.KindShootingStar, effects.KindComet} {
		if cmd := m.spawnTick(k); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case FrameMsg:
		m.scheduler.Tick(msg.Handle, m.timestamp(msg.Time))

	case TransitionMsg:
		m.transition.Step(msg.Handle, msg.Time, m.renderNow)

	case SpawnMsg:
		m.state.Spawn(msg.Kind)
		if cmd := m.spawnTick(msg.Kind); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.frames.drain()...)
	cmds = append(cmds, m.camFrames.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.scheduler.Stop()
		m.log.Info("quit after %d frames", m.state.Frames)
		return tea.Quit
	case " ", "space", "p":
		m.togglePause()
	case "r":
		m.resetCamera()
	case "f":
		m.focusStar()
	case "m":
		m.toggleMute()
	case "left":
		m.controls.Rotate(-orbitStep, 0)
	case "right":
		m.controls.Rotate(orbitStep, 0)
	case "up":
		m.controls.Rotate(0, -orbitStep)
	case "down":
		m.controls.Rotate(0, orbitStep)
	case "+", "=":
		m.controls.Zoom(zoomIn)
	case "-", "_":
		m.controls.Zoom(zoomOut)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.controls.Zoom(zoomIn)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.controls.Zoom(zoomOut)
		return
	}

	if msg.Y < headerHeight {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.pressButton(m.buttonAt(msg.X))
		}
		return
	}

	pointer := picking.Point{X: msg.X, Y: msg.Y - headerHeight}
	if area, ok := m.overlay.panelArea(m.renderer.Viewport().Width); ok && area.Contains(pointer) {
		return
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.state.Tooltip.Move(pointer, m.pick(pointer))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.state.Tooltip.Click(pointer, m.pick(pointer))
		if b := m.state.Tooltip.Body(); b != nil && m.state.Tooltip.State() == picking.Pinned {
			m.log.Debug("pinned %s", b.Name)
		}
	default:
		return
	}
	m.renderer.Highlight = m.state.Tooltip.Body()
}

func (m *Model) pick(p picking.Point) *body.Body {
	b, _ := m.picker.Pick(p.X, p.Y, m.state.Pickable())
	return b
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.ready = true

	m.renderer.SetSize(w, max(0, h-headerHeight-footerHeight))
	vp := m.renderer.Viewport()
	m.cam.Aspect = vp.Aspect()
	m.picker.Viewport = vp
	m.state.Tooltip.SetBounds(vp.Width, vp.Height)
	m.state.Tooltip.Reset()
	m.renderer.Highlight = nil
	m.renderNow()

	m.log.Debug("resize %dx%d, canvas %dx%d", w, h, vp.Width, vp.Height)
}

func (m *Model) renderNow() {
	m.renderer.Render(m.state, m.cam)
}

func (m *Model) togglePause() {
	paused := m.scheduler.TogglePause()
	m.log.Debug("paused=%v at t=%.0fms", paused, m.state.Timestamp)
}

func (m *Model) resetCamera() {
	m.controls.Stop()
	to := anim.Pose{Position: astro.Vec3{Z: m.cfg.Camera.StartDistance}, Target: astro.Origin}
	m.transition.Start(to, 0, m.clock())
	m.statusMsg = "camera reset"
}

func (m *Model) focusStar() {
	m.controls.Stop()
	star := m.state.Registry.Star().Position()
	to := anim.Pose{
		Position: star.Add(astro.Vec3{Z: m.cfg.Camera.FocusOffset}),
		Target:   star,
	}
	m.transition.Start(to, m.cfg.Camera.FocusDuration.D(), m.clock())
	m.statusMsg = "focusing " + m.state.Registry.Star().Name
}

func (m *Model) toggleMute() {
	if m.music == nil {
		m.statusMsg = "audio unavailable"
		return
	}
	muted := m.music.ToggleMute()
	m.log.Debug("muted=%v", muted)
}

func (m *Model) spawnTick(k effects.Kind) tea.Cmd {
	c := m.cfg.Effects.ShootingStars
	if k == effects.KindComet {
		c = m.cfg.Effects.Comets
	}
	if !c.Enabled || c.Interval.D() <= 0 {
		return nil
	}
	return spawnCmd(k, c.Interval.D())
}

// timestamp converts a tick time to milliseconds since start.
func (m Model) timestamp(t time.Time) float64 {
	return float64(t.Sub(m.start)) / float64(time.Millisecond)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderControlBar() + "\n" + m.renderer.Frame() + "\n" + m.renderFooter()
}

type button struct {
	key   string
	label string
}

func (m Model) buttons() []button {
	pause := "Pause"
	if m.overlay.pauseLabelled {
		pause = "Resume"
	}
	bs := []button{
		{"p", pause},
		{"r", "Reset camera"},
		{"f", "Focus " + m.state.Registry.Star().Name},
	}
	if m.music != nil {
		mute := "Mute music"
		if m.music.Muted() {
			mute = "Unmute music"
		}
		bs = append(bs, button{"m", mute})
	}
	return bs
}

func (b button) text() string {
	return "[" + b.key + "] " + b.label
}

// buttonAt returns the key of the control bar button at column x.
func (m Model) buttonAt(x int) string {
	col := 2
	for _, b := range m.buttons() {
		w := lipgloss.Width(b.text())
		if x >= col && x < col+w {
			return b.key
		}
		col += w + 2
	}
	return ""
}

func (m *Model) pressButton(key string) {
	switch key {
	case "p":
		m.togglePause()
	case "r":
		m.resetCamera()
	case "f":
		m.focusStar()
	case "m":
		m.toggleMute()
	}
}

func (m Model) renderControlBar() string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	var parts []string
	for i, b := range m.buttons() {
		if i == 0 && m.overlay.pauseLabelled {
			parts = append(parts, pausedStyle.Render(b.text()))
			continue
		}
		parts = append(parts, activeStyle.Render(b.text()))
	}
	bar := "  " + strings.Join(parts, "  ")

	clock := fmt.Sprintf("t=%.1fs", m.state.Timestamp/1000)
	if m.state.Paused {
		clock += " ⏸"
	}
	return bar + "  " + dimStyle.Render(clock)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	help := "space/p: pause | r: reset | f: focus | m: mute | arrows: orbit | +/-: zoom | q: quit"
	status := fmt.Sprintf("fx %d", m.state.Effects.Len())
	if m.statusMsg != "" {
		status += " · " + m.statusMsg
	}
	return "  " + dimStyle.Render(status) + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}
