package audio

import (
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/domain/track"
)

// SilentEngine emulates playback against the clock without an output device.
// Tracks are decoded once on Load to learn their length.
type SilentEngine struct {
	now func() time.Time

	loaded *track.Track
	length time.Duration

	playing   bool
	paused    bool
	startedAt time.Time
	elapsed   time.Duration // Played time before startedAt
}

// NewSilentEngine creates a silent engine. A nil clock means time.Now.
func NewSilentEngine(now func() time.Time) *SilentEngine {
	if now == nil {
		now = time.Now
	}
	return &SilentEngine{now: now}
}

func (e *SilentEngine) Init() error {
	return nil
}

func (e *SilentEngine) Load(t track.Track) error {
	length, err := Probe(t.Path)
	if err != nil {
		return err
	}

	e.reset()
	e.loaded = &t
	e.length = length

	zlog.Debug().Msgf("audio: silent engine loaded %s: length=%v", t.Name, length)
	return nil
}

func (e *SilentEngine) Play() error {
	if e.loaded == nil {
		return ErrNothingLoaded
	}
	e.reset()
	e.playing = true
	e.startedAt = e.now()
	return nil
}

func (e *SilentEngine) Pause() error {
	if !e.playing {
		return ErrNothingLoaded
	}
	if !e.paused {
		e.elapsed += e.now().Sub(e.startedAt)
		e.paused = true
	}
	return nil
}

func (e *SilentEngine) Unpause() error {
	if !e.playing {
		return ErrNothingLoaded
	}
	if e.paused {
		e.startedAt = e.now()
		e.paused = false
	}
	return nil
}

func (e *SilentEngine) Stop() error {
	e.reset()
	return nil
}

// IsBusy reports whether the emulated position is still inside the track.
func (e *SilentEngine) IsBusy() (bool, error) {
	if !e.playing {
		return false, nil
	}
	return e.position() < e.length, nil
}

func (e *SilentEngine) Quit() error {
	e.reset()
	e.loaded = nil
	e.length = 0
	return nil
}

func (e *SilentEngine) position() time.Duration {
	if e.paused {
		return e.elapsed
	}
	return e.elapsed + e.now().Sub(e.startedAt)
}

func (e *SilentEngine) reset() {
	e.playing = false
	e.paused = false
	e.elapsed = 0
	e.startedAt = time.Time{}
}
