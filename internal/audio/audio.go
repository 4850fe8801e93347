// Package audio plays the game's synthesized sound cues through the system
// speaker. Whether a speaker exists is decided once by Open; a disabled
// Engine accepts every call and does nothing.
package audio

import (
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/spacedodge/internal/game/config"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a sound the game can ask for.
type Cue int

const (
	CueLaser Cue = iota
	CueExplosion
	CueLevelUp
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueLaser:
		return "laser"
	case CueExplosion:
		return "explosion"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

var errUnknownCue = errors.New("unknown cue")

// Music loop notes (A minor arpeggio).
var musicNotes = []float64{220.00, 261.63, 329.63, 440.00, 329.63, 261.63}

// Engine plays cues and background music.
type Engine struct {
	enabled bool
	logger  *log.Logger

	mu       sync.Mutex
	volume   float64
	muted    bool
	music    *beep.Ctrl
	musicVol *effects.Volume
	seed     int64
}

// Disabled returns an engine that never touches the speaker.
func Disabled() *Engine {
	return &Engine{
		logger: log.New(io.Discard),
		volume: config.DefaultVolume,
	}
}

// Open initializes the speaker. If that fails the returned engine is
// disabled and the reason is logged.
func Open(logger *log.Logger) *Engine {
	e := Disabled()
	if logger != nil {
		e.logger = logger
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		e.logger.Warn("audio unavailable, running silent", "err", err)
		return e
	}
	e.enabled = true
	e.logger.Debug("audio initialized", "sample_rate", int(sampleRate))
	return e
}

// Enabled reports whether a speaker was found at startup.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Play starts a cue. It does not block.
func (e *Engine) Play(c Cue) {
	if !e.enabled {
		return
	}
	s, err := e.cue(c)
	if err != nil {
		e.logger.Warn("cannot build sound", "cue", c, "err", err)
		return
	}
	e.mu.Lock()
	vol := e.volumeEffect(s)
	e.mu.Unlock()
	speaker.Play(vol)
}

func (e *Engine) cue(c Cue) (beep.Streamer, error) {
	switch c {
	case CueLaser:
		return newSweep(sampleRate, 1800, 300, 120*time.Millisecond, 0.25), nil
	case CueExplosion:
		e.mu.Lock()
		e.seed++
		seed := e.seed
		e.mu.Unlock()
		return newNoiseBurst(sampleRate, config.ExplosionDuration, 0.6, seed), nil
	case CueLevelUp:
		return chime(sampleRate, 90*time.Millisecond, 660, 880, 1320)
	case CueGameOver:
		return newSweep(sampleRate, 440, 80, 900*time.Millisecond, 0.35), nil
	default:
		return nil, errUnknownCue
	}
}

// StartMusic starts or resumes the background loop.
func (e *Engine) StartMusic() {
	if !e.enabled {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.music == nil {
		e.music = &beep.Ctrl{Streamer: newArpeggio(sampleRate, musicNotes, 180*time.Millisecond, 0.12)}
		e.musicVol = e.volumeEffect(e.music)
		speaker.Play(e.musicVol)
		return
	}
	speaker.Lock()
	e.music.Paused = false
	speaker.Unlock()
}

// StopMusic pauses the background loop.
func (e *Engine) StopMusic() {
	if !e.enabled {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music == nil {
		return
	}
	speaker.Lock()
	e.music.Paused = true
	speaker.Unlock()
}

// Volume returns the master volume in [0, 1].
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume sets the master volume, clamped to [0, 1].
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = math.Max(0, math.Min(1, v))
	e.applyMusicVolume()
}

// Muted reports whether all output is silenced.
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// ToggleMute flips the mute switch.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	e.applyMusicVolume()
}

// Close stops all playback.
func (e *Engine) Close() {
	if !e.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
}

// volumeEffect wraps s with the current gain. e.mu must be held.
func (e *Engine) volumeEffect(s beep.Streamer) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	e.setGain(v)
	return v
}

// setGain maps the linear volume onto the effect. e.mu must be held.
func (e *Engine) setGain(v *effects.Volume) {
	if e.muted || e.volume <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(e.volume)
}

// applyMusicVolume updates the playing loop. e.mu must be held.
func (e *Engine) applyMusicVolume() {
	if !e.enabled || e.musicVol == nil {
		return
	}
	speaker.Lock()
	e.setGain(e.musicVol)
	speaker.Unlock()
}
