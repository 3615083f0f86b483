// Package session wires a playlist, an audio engine and the playback
// controller into one interactive listening session.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/notification"
	"github.com/osa030/dirbox/internal/app/playback"
	"github.com/osa030/dirbox/internal/domain/playlist"
)

var ErrAlreadyStarted = errors.New("session already started")

// Config holds session options.
type Config struct {
	PollInterval time.Duration
	Loop         bool
}

// Manager owns the lifetime of a session.
type Manager struct {
	mu sync.Mutex

	id         string
	tracks     *playlist.Playlist
	engine     playback.Engine
	controller *playback.Controller
	printer    *notification.Printer

	started     bool
	printerDone chan struct{}
}

// NewManager creates a session. Event messages are written to out.
func NewManager(cfg Config, tracks *playlist.Playlist, engine playback.Engine, out io.Writer) *Manager {
	id := uuid.New().String()

	return &Manager{
		id:     id,
		tracks: tracks,
		engine: engine,
		controller: playback.NewController(playback.Config{
			PollInterval: cfg.PollInterval,
			Loop:         cfg.Loop,
			SessionID:    id,
		}, tracks, engine),
		printer:     notification.NewPrinter(out),
		printerDone: make(chan struct{}),
	}
}

// ID returns the session id used in log entries.
func (m *Manager) ID() string {
	return m.id
}

// Controller returns the playback controller.
func (m *Manager) Controller() *playback.Controller {
	return m.controller
}

// Start initializes the engine, starts event printing and the completion
// monitor, then plays the first track. A failure of the first track is
// reported but does not end the session.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.engine.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize audio engine")
	}
	m.started = true

	go func() {
		defer close(m.printerDone)
		m.printer.Run(m.controller.Events())
	}()
	m.controller.Start()

	zlog.Debug().Str("session", m.id).Msgf("session: started: dir=%s tracks=%d", m.tracks.Dir, m.tracks.Len())

	if err := m.controller.Play(); err != nil {
		zlog.Error().Str("session", m.id).Err(err).Msg("session: initial playback failed")
		m.printer.Handle(playback.Event{Type: playback.EventPlaybackFailed, Err: err})
	}
	return nil
}

// Close stops playback, releases the engine and waits for pending messages.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.controller.Close()
	if m.started {
		<-m.printerDone
	}

	zlog.Info().Str("session", m.id).Msg("session: closed")
	return err
}
