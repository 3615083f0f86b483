package audio

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/domain/track"
)

// SpeakerEngine plays tracks on the default audio output device.
// It is not safe for concurrent use apart from IsBusy.
type SpeakerEngine struct {
	settings    Settings
	sampleRate  beep.SampleRate
	initialized bool

	loaded   *track.Track
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	// generation identifies the current Play call so that the end callback
	// of a cleared sequence cannot mark a newer one as finished. Both are
	// touched from the speaker goroutine, which holds the speaker lock.
	generation atomic.Uint64
	busy       atomic.Bool
}

// NewSpeakerEngine creates a speaker engine. Init must be called before Load.
func NewSpeakerEngine(settings Settings) *SpeakerEngine {
	return &SpeakerEngine{settings: settings}
}

// Init opens the output device.
func (e *SpeakerEngine) Init() error {
	if e.initialized {
		return nil
	}

	e.sampleRate = beep.SampleRate(e.settings.SampleRate)
	bufferSize := e.sampleRate.N(time.Duration(e.settings.BufferMs) * time.Millisecond)
	if err := speaker.Init(e.sampleRate, bufferSize); err != nil {
		return errors.Wrap(err, "failed to initialize speaker")
	}
	e.initialized = true

	zlog.Debug().Msgf("audio: speaker initialized: sample_rate=%d buffer=%d", e.sampleRate, bufferSize)
	return nil
}

// Load decodes the track and makes it the one Play starts.
func (e *SpeakerEngine) Load(t track.Track) error {
	if !e.initialized {
		return ErrNotInitialized
	}

	streamer, format, err := Open(t.Path)
	if err != nil {
		return err
	}

	e.halt()
	e.release()
	e.loaded = &t
	e.streamer = streamer
	e.format = format

	zlog.Debug().Msgf("audio: loaded %s: sample_rate=%d channels=%d", t.Name, format.SampleRate, format.NumChannels)
	return nil
}

// Play starts the loaded track from the beginning.
func (e *SpeakerEngine) Play() error {
	if e.streamer == nil {
		return ErrNothingLoaded
	}

	e.halt()
	if err := e.streamer.Seek(0); err != nil {
		return errors.Wrapf(err, "failed to rewind %s", e.loaded.Name)
	}

	var s beep.Streamer = e.streamer
	if e.format.SampleRate != e.sampleRate {
		s = beep.Resample(e.settings.ResampleQuality, e.format.SampleRate, e.sampleRate, s)
	}
	e.ctrl = &beep.Ctrl{Streamer: s}

	gen := e.generation.Add(1)
	e.busy.Store(true)
	speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		if e.generation.Load() == gen {
			e.busy.Store(false)
		}
	})))
	return nil
}

// Pause silences output while keeping the position.
func (e *SpeakerEngine) Pause() error {
	return e.setPaused(true)
}

// Unpause continues from the paused position.
func (e *SpeakerEngine) Unpause() error {
	return e.setPaused(false)
}

func (e *SpeakerEngine) setPaused(paused bool) error {
	if e.ctrl == nil {
		return ErrNothingLoaded
	}
	speaker.Lock()
	e.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// Stop halts playback. The loaded track stays loaded.
func (e *SpeakerEngine) Stop() error {
	e.halt()
	return nil
}

// IsBusy reports whether a started track has not yet reached its end.
func (e *SpeakerEngine) IsBusy() (bool, error) {
	return e.busy.Load(), nil
}

// Quit stops playback, closes the loaded track and the output device.
func (e *SpeakerEngine) Quit() error {
	e.halt()
	err := e.release()
	if e.initialized {
		speaker.Close()
		e.initialized = false
	}
	return err
}

func (e *SpeakerEngine) halt() {
	e.generation.Add(1)
	e.busy.Store(false)
	if e.initialized {
		speaker.Clear()
	}
	e.ctrl = nil
}

func (e *SpeakerEngine) release() error {
	if e.streamer == nil {
		return nil
	}
	err := e.streamer.Close()
	e.streamer = nil
	e.loaded = nil
	if err != nil {
		return errors.Wrap(err, "failed to close track")
	}
	return nil
}
