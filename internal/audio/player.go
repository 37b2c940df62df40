// Package audio plays the looping background music.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/litescript/ls-orrery/internal/logging"
)

// ErrUnsupported is returned for files that are neither MP3 nor WAV.
var ErrUnsupported = errors.New("unsupported audio format")

// SampleRate is the output device rate; tracks are resampled to it.
const SampleRate = beep.SampleRate(48000)

// Output is the audio device.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerOutput) Play(s ...beep.Streamer)              { speaker.Play(s...) }
func (speakerOutput) Lock()                                { speaker.Lock() }
func (speakerOutput) Unlock()                              { speaker.Unlock() }
func (speakerOutput) Clear()                               { speaker.Clear() }
func (speakerOutput) Close()                               { speaker.Close() }

// Player loops one track with mute and volume control.
type Player struct {
	mu  sync.Mutex
	out Output
	log *logging.Logger

	ready  bool
	volume float64
	muted  bool

	track beep.StreamSeekCloser
	ctrl  *beep.Ctrl
	gain  *effects.Volume
	path  string
}

// New creates a player on the system speaker.
func New(log *logging.Logger) *Player {
	return NewWithOutput(speakerOutput{}, log)
}

// NewWithOutput creates a player on the given device.
func NewWithOutput(out Output, log *logging.Logger) *Player {
	if log == nil {
		log = logging.Discard()
	}
	return &Player{out: out, log: log, volume: 1}
}

// Decode opens an MP3 or WAV file, chosen by extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".wav" {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open audio file: %w", err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	if ext == ".mp3" {
		s, format, err = mp3.Decode(f)
	} else {
		s, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return s, format, nil
}

// Play replaces the current track with the file at path, looped forever.
func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	track, format, err := Decode(path)
	if err != nil {
		return err
	}

	if !p.ready {
		if err := p.out.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
			track.Close()
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		p.ready = true
	}

	looped, err := beep.Loop2(track)
	if err != nil {
		track.Close()
		return fmt.Errorf("failed to loop %s: %w", path, err)
	}

	var s beep.Streamer = looped
	if format.SampleRate != SampleRate {
		s = beep.Resample(3, format.SampleRate, SampleRate, looped)
	}

	p.gain = &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToPower(p.volume),
		Silent:   p.silentLocked(),
	}
	p.ctrl = &beep.Ctrl{Streamer: p.gain}
	p.track = track
	p.path = path

	p.out.Play(p.ctrl)
	p.log.Info("playing %s (%d Hz)", path, format.SampleRate)
	return nil
}

// Playing reports whether a track is loaded.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// Path returns the current track.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Muted reports whether output is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// ToggleMute flips mute and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.applyLocked()
	p.log.Debug("muted=%v", p.muted)
	return p.muted
}

// SetVolume sets the linear volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, v))
	p.applyLocked()
}

// Volume returns the linear volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Stop ends playback and releases the track.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.ready {
		p.out.Close()
		p.ready = false
	}
}

func (p *Player) silentLocked() bool {
	return p.muted || p.volume <= 0.01
}

func (p *Player) applyLocked() {
	if p.gain == nil {
		return
	}
	p.out.Lock()
	p.gain.Volume = volumeToPower(p.volume)
	p.gain.Silent = p.silentLocked()
	p.out.Unlock()
}

func (p *Player) stopLocked() {
	if p.ctrl != nil {
		p.out.Clear()
		p.ctrl = nil
		p.gain = nil
	}
	if p.track != nil {
		p.track.Close()
		p.track = nil
	}
	p.path = ""
}

// volumeToPower maps linear volume to the base-2 exponent effects.Volume
// expects.
func volumeToPower(vol float64) float64 {
	if vol <= 0.01 {
		return -10
	}
	return math.Log2(vol)
}
