package anim

import (
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
)

// Pose is a camera position and look-at target.
type Pose struct {
	Position astro.Vec3
	Target   astro.Vec3
}

// PoseOf returns a camera's current pose.
func PoseOf(c *camera.Camera) Pose {
	return Pose{Position: c.Position, Target: c.Target}
}

// Lerp interpolates both points of a pose.
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Position: astro.Lerp(p.Position, to.Position, t),
		Target:   astro.Lerp(p.Target, to.Target, t),
	}
}

// CameraControls is what a transition drives.
type CameraControls interface {
	camera.Controls
	SetTarget(astro.Vec3)
	SetPosition(astro.Vec3)
}

// Transition glides the camera between two poses over a fixed duration on
// its own frame sequence, independent of the main loop and of pause. A
// new Start replaces any transition in flight.
type Transition struct {
	frames   FrameScheduler
	controls CameraControls
	cam      *camera.Camera

	from, to Pose
	duration time.Duration
	started  time.Time
	pending  Handle
}

// NewTransition creates an idle transition.
func NewTransition(frames FrameScheduler, controls CameraControls, cam *camera.Camera) *Transition {
	return &Transition{frames: frames, controls: controls, cam: cam}
}

// Active reports whether a transition frame is pending.
func (t *Transition) Active() bool {
	return t.pending != 0
}

// Pending returns the scheduled frame handle, if any.
func (t *Transition) Pending() (Handle, bool) {
	return t.pending, t.pending != 0
}

// Start begins a transition from the camera's current pose.
func (t *Transition) Start(to Pose, d time.Duration, now time.Time) {
	t.StartFrom(PoseOf(t.cam), to, d, now)
}

// StartFrom begins a transition between explicit poses.
func (t *Transition) StartFrom(from, to Pose, d time.Duration, now time.Time) {
	if t.pending != 0 {
		t.frames.Cancel(t.pending)
	}
	t.from, t.to = from, to
	t.duration = d
	t.started = now
	t.pending = t.frames.ScheduleNext()
}

// Fraction returns the elapsed share of the duration, clamped to [0, 1].
func (t *Transition) Fraction(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	return astro.Clamp01(float64(now.Sub(t.started)) / float64(t.duration))
}

// Step runs one transition frame for handle h. Stale handles are ignored.
// It returns the fraction applied and whether another frame was scheduled.
func (t *Transition) Step(h Handle, now time.Time, render func()) (float64, bool) {
	if h == 0 || h != t.pending {
		return 0, false
	}
	t.pending = 0

	frac := t.Fraction(now)
	pose := t.from.Lerp(t.to, frac)
	t.controls.SetPosition(pose.Position)
	t.controls.SetTarget(pose.Target)
	t.controls.Update()
	if render != nil {
		render()
	}

	if frac >= 1 {
		return frac, false
	}
	t.pending = t.frames.ScheduleNext()
	return frac, true
}
