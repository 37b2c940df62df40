package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/effects"
)

// Msg types for Bubble Tea
type (
	// FrameMsg fires a scheduled main loop frame.
	FrameMsg struct {
		Handle anim.Handle
		Time   time.Time
	}

	// TransitionMsg fires a scheduled camera transition frame.
	TransitionMsg struct {
		Handle anim.Handle
		Time   time.Time
	}

	// SpawnMsg runs one transient population's spawn policy.
	SpawnMsg struct {
		Kind effects.Kind
	}
)

// teaFrames schedules frames as tea.Tick commands. Scheduled commands are
// queued until the model drains them into its Update result. Cancel is a
// no-op: the tick still arrives, and its stale handle is ignored.
type teaFrames struct {
	interval time.Duration
	msg      func(anim.Handle, time.Time) tea.Msg

	last   anim.Handle
	queued []tea.Cmd
}

func newTeaFrames(interval time.Duration, msg func(anim.Handle, time.Time) tea.Msg) *teaFrames {
	return &teaFrames{interval: interval, msg: msg}
}

// ScheduleNext implements anim.FrameScheduler.
func (f *teaFrames) ScheduleNext() anim.Handle {
	f.last++
	h := f.last
	f.queued = append(f.queued, tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return f.msg(h, t)
	}))
	return h
}

// Cancel implements anim.FrameScheduler.
func (f *teaFrames) Cancel(anim.Handle) {}

// drain returns and clears the queued commands.
func (f *teaFrames) drain() []tea.Cmd {
	cmds := f.queued
	f.queued = nil
	return cmds
}

func frameMsg(h anim.Handle, t time.Time) tea.Msg {
	return FrameMsg{Handle: h, Time: t}
}

func transitionMsg(h anim.Handle, t time.Time) tea.Msg {
	return TransitionMsg{Handle: h, Time: t}
}

func spawnCmd(k effects.Kind, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SpawnMsg{Kind: k}
	})
}
