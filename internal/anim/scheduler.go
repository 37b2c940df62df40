// Package anim drives the frame loop and camera transitions.
package anim

import (
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Handle identifies a scheduled frame. The zero Handle means none.
type Handle uint64

// FrameScheduler requests frame callbacks from the host loop.
type FrameScheduler interface {
	// ScheduleNext requests one frame and returns its handle.
	ScheduleNext() Handle
	// Cancel withdraws a requested frame if it has not fired.
	Cancel(h Handle)
}

// Renderer draws the current scene.
type Renderer interface {
	Render(s *scene.State, cam *camera.Camera)
}

// PauseLabeler shows the pause state.
type PauseLabeler interface {
	SetPauseLabel(paused bool)
}

// Scheduler runs the per-frame loop. It keeps ticking while paused; pause
// only freezes kinematics and transients.
type Scheduler struct {
	state    *scene.State
	frames   FrameScheduler
	controls camera.Controls
	cam      *camera.Camera
	renderer Renderer
	label    PauseLabeler

	pending Handle
}

// Options wires a Scheduler.
type Options struct {
	State    *scene.State
	Frames   FrameScheduler
	Controls camera.Controls
	Camera   *camera.Camera
	Renderer Renderer
	Label    PauseLabeler
}

// NewScheduler creates a scheduler in the Running state with no frame
// scheduled.
func NewScheduler(o Options) *Scheduler {
	return &Scheduler{
		state:    o.State,
		frames:   o.Frames,
		controls: o.Controls,
		cam:      o.Camera,
		renderer: o.Renderer,
		label:    o.Label,
	}
}

// Start schedules the first frame unless one is already pending.
func (s *Scheduler) Start() {
	if s.pending == 0 {
		s.pending = s.frames.ScheduleNext()
	}
}

// Stop withdraws the pending frame.
func (s *Scheduler) Stop() {
	if s.pending != 0 {
		s.frames.Cancel(s.pending)
		s.pending = 0
	}
}

// Pending returns the scheduled frame handle, if any.
func (s *Scheduler) Pending() (Handle, bool) {
	return s.pending, s.pending != 0
}

// Paused reports whether simulation is frozen.
func (s *Scheduler) Paused() bool {
	return s.state.Paused
}

// Tick runs one frame for handle h at timestamp ms. Frames other than the
// pending one are stale and ignored. It reports whether the frame ran.
//
// Order within a frame: kinematics, transients, controls, render, then
// the next frame is scheduled.
func (s *Scheduler) Tick(h Handle, timestamp float64) bool {
	if h == 0 || h != s.pending {
		return false
	}
	s.pending = 0
	s.state.Frames++

	if !s.state.Paused {
		s.state.Advance(timestamp)
		s.state.StepEffects()
	}
	if s.controls != nil {
		s.controls.Update()
	}
	if s.renderer != nil {
		s.renderer.Render(s.state, s.cam)
	}

	s.pending = s.frames.ScheduleNext()
	return true
}

// SetPaused sets the pause flag. Leaving or entering pause with no frame
// pending re-arms the loop.
func (s *Scheduler) SetPaused(paused bool) {
	s.state.Paused = paused
	if s.label != nil {
		s.label.SetPauseLabel(paused)
	}
	s.Start()
}

// TogglePause flips the pause flag and returns the new value.
func (s *Scheduler) TogglePause() bool {
	s.SetPaused(!s.state.Paused)
	return s.state.Paused
}
