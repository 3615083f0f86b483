package playback

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/domain/playlist"
	"github.com/osa030/dirbox/internal/domain/track"
)

// Errors
var (
	ErrPlaylistEmpty   = errors.New("playlist is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNoTrack         = errors.New("no track loaded")
	ErrNotPlaying      = errors.New("not playing")
	ErrNotPaused       = errors.New("not paused")
	ErrClosed          = errors.New("controller is closed")
)

// DefaultPollInterval is the monitor polling interval used when none is configured.
const DefaultPollInterval = 500 * time.Millisecond

// EventBufferSize is the capacity of the event channel.
const EventBufferSize = 16

const noTrack = -1

// Config holds controller configuration.
type Config struct {
	PollInterval time.Duration // Interval between end-of-track checks
	Loop         bool          // Wrap to the first track after the last one
	SessionID    string        // Identifier attached to log lines
}

// Entry is one line of the playlist listing.
type Entry struct {
	Index   int
	Track   track.Track
	Current bool // Track is the current one and is playing
}

// Status is a snapshot of the controller state.
type Status struct {
	Index     int
	Track     track.Track
	State     State
	Loop      bool
	SessionID string
}

// Controller manages playlist playback. All state and every engine call are
// guarded by a single mutex shared with the completion monitor.
type Controller struct {
	mu sync.Mutex

	tracks  *playlist.Playlist
	engine  Engine
	current int // noTrack iff the playlist is empty
	state   State
	closed  bool

	config Config

	// Events
	eventCh chan Event

	// Monitor lifecycle
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
	closeErr  error
}

// NewController creates a new playback controller for the playlist.
// The monitor is not running until Start is called.
func NewController(config Config, tracks *playlist.Playlist, engine Engine) *Controller {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if tracks == nil {
		tracks = playlist.New("", "", nil)
	}

	current := noTrack
	if !tracks.IsEmpty() {
		current = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		tracks:  tracks,
		engine:  engine,
		current: current,
		state:   StateStopped,
		config:  config,
		eventCh: make(chan Event, EventBufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Events returns the event channel. It is closed by Close.
// Sends never block the controller: once EventBufferSize events are pending,
// further events, including EventTrackStarted, are dropped until the
// consumer catches up. Status always reports the current track.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Start launches the completion monitor. Calling it more than once has no effect.
func (c *Controller) Start() {
	c.startOnce.Do(func() {
		c.wg.Add(1)
		go c.monitor()
		zlog.Debug().Str("session", c.config.SessionID).Msgf("playback: monitor started: interval=%v loop=%v tracks=%d",
			c.config.PollInterval, c.config.Loop, c.tracks.Len())
	})
}

// List returns the playlist with the playing track marked.
func (c *Controller) List() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry, c.tracks.Len())
	for i, t := range c.tracks.Tracks {
		entries[i] = Entry{
			Index:   i,
			Track:   t,
			Current: i == c.current && c.state == StatePlaying,
		}
	}
	return entries
}

// Play starts the current track.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if c.current == noTrack {
		return ErrPlaylistEmpty
	}
	return c.playCurrentLocked()
}

// PlayAt makes index the current track and starts it.
// An out-of-range index leaves the state untouched.
func (c *Controller) PlayAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if c.current == noTrack {
		return ErrPlaylistEmpty
	}
	if index < 0 || index >= c.tracks.Len() {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
	}

	c.current = index
	return c.playCurrentLocked()
}

// Pause pauses the current playback.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if !c.state.CanPause() {
		return ErrNotPlaying
	}

	if err := c.engine.Pause(); err != nil {
		return errors.Wrap(err, "failed to pause")
	}
	c.state = StatePaused
	c.sendStateChangedLocked()

	return nil
}

// Resume resumes paused playback.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if !c.state.CanResume() {
		return ErrNotPaused
	}

	if err := c.engine.Unpause(); err != nil {
		return errors.Wrap(err, "failed to resume")
	}
	c.state = StatePlaying
	c.sendStateChangedLocked()

	return nil
}

// Stop stops playback. Stopping twice is not an error.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	return c.stopLocked()
}

// Next advances to the following track, wrapping at the end, and plays it
// regardless of the previous state.
func (c *Controller) Next() error {
	return c.skip(1)
}

// Previous moves to the preceding track, wrapping at the start, and plays it
// regardless of the previous state.
func (c *Controller) Previous() error {
	return c.skip(-1)
}

func (c *Controller) skip(delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if c.current == noTrack {
		return ErrNoTrack
	}

	n := c.tracks.Len()
	c.current = ((c.current+delta)%n + n) % n
	return c.playCurrentLocked()
}

// Status returns a snapshot of the current track and state.
func (c *Controller) Status() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == noTrack {
		return Status{State: c.state, Loop: c.config.Loop, SessionID: c.config.SessionID}, ErrNoTrack
	}
	return Status{
		Index:     c.current,
		Track:     c.tracks.Tracks[c.current],
		State:     c.state,
		Loop:      c.config.Loop,
		SessionID: c.config.SessionID,
	}, nil
}

// GetState returns the current playback state.
func (c *Controller) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GetCurrentIndex returns the current index, or false if the playlist is empty.
func (c *Controller) GetCurrentIndex() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == noTrack {
		return 0, false
	}
	return c.current, true
}

// Close stops the monitor, stops playback and releases the engine.
// Calls after the first one return the first result.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		// The monitor takes the lock each cycle, so wait for it before locking.
		c.cancel()
		c.wg.Wait()

		c.mu.Lock()
		defer c.mu.Unlock()

		stopErr := c.engine.Stop()
		if stopErr != nil {
			stopErr = errors.Wrap(stopErr, "failed to stop engine")
		}
		quitErr := c.engine.Quit()
		if quitErr != nil {
			quitErr = errors.Wrap(quitErr, "failed to release engine")
		}

		c.state = StateStopped
		c.closed = true
		close(c.eventCh)
		c.closeErr = errors.CombineErrors(stopErr, quitErr)

		zlog.Debug().Str("session", c.config.SessionID).Msg("playback: controller closed")
	})
	return c.closeErr
}

func (c *Controller) checkOpenLocked() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

// stopLocked stops the engine and marks playback stopped.
// Must be called with lock held.
func (c *Controller) stopLocked() error {
	prev := c.state
	err := c.engine.Stop()
	c.state = StateStopped
	if prev != StateStopped {
		c.sendStateChangedLocked()
	}
	if err != nil {
		return errors.Wrap(err, "failed to stop")
	}
	return nil
}

// playCurrentLocked loads and starts the current track.
// On failure playback is left stopped.
// Must be called with lock held.
func (c *Controller) playCurrentLocked() error {
	index := c.current
	t := c.tracks.Tracks[index]

	if err := c.engine.Load(t); err != nil {
		return c.abortLocked(errors.Wrapf(err, "failed to load %s", t.Name))
	}
	if err := c.engine.Play(); err != nil {
		return c.abortLocked(errors.Wrapf(err, "failed to play %s", t.Name))
	}

	c.state = StatePlaying
	zlog.Debug().Str("session", c.config.SessionID).Msgf("playback: playing: index=%d track=%s", index, t.Name)

	c.sendEventLocked(Event{
		Type:  EventTrackStarted,
		Index: index,
		Track: &t,
		State: c.state,
	})
	return nil
}

// abortLocked stops the engine after a failed start and returns err.
// Must be called with lock held.
func (c *Controller) abortLocked(err error) error {
	if stopErr := c.engine.Stop(); stopErr != nil {
		zlog.Debug().Err(stopErr).Msg("playback: stop after failed start also failed")
	}
	prev := c.state
	c.state = StateStopped
	if prev != StateStopped {
		c.sendStateChangedLocked()
	}
	return err
}

func (c *Controller) sendStateChangedLocked() {
	e := Event{
		Type:  EventStateChanged,
		Index: c.current,
		State: c.state,
	}
	if c.current != noTrack {
		t := c.tracks.Tracks[c.current]
		e.Track = &t
	}
	c.sendEventLocked(e)
}

// sendEventLocked sends an event without blocking.
// Must be called with lock held.
func (c *Controller) sendEventLocked(e Event) {
	if c.closed {
		return
	}
	select {
	case c.eventCh <- e:
	default:
		zlog.Debug().Msgf("playback: event dropped, channel full: type=%s", e.Type)
	}
}
