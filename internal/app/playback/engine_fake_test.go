package playback

import (
	"sync"

	"github.com/osa030/dirbox/internal/domain/playlist"
	"github.com/osa030/dirbox/internal/domain/track"
)

// fakeEngine is an in-memory Engine whose busy signal is driven by the test.
type fakeEngine struct {
	mu sync.Mutex

	calls  []string
	loaded track.Track
	busy   bool

	loadErrs map[string]error // keyed by track name
	playErr  error
	pauseErr error
	stopErr  error
	busyErr  error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{loadErrs: make(map[string]error)}
}

func (f *fakeEngine) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeEngine) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("init")
	return nil
}

func (f *fakeEngine) Load(t track.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("load:" + t.Name)
	if err := f.loadErrs[t.Name]; err != nil {
		return err
	}
	f.loaded = t
	return nil
}

func (f *fakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("play")
	if f.playErr != nil {
		return f.playErr
	}
	f.busy = true
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("pause")
	return f.pauseErr
}

func (f *fakeEngine) Unpause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("unpause")
	return nil
}

func (f *fakeEngine) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("stop")
	f.busy = false
	return f.stopErr
}

func (f *fakeEngine) IsBusy() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("busy")
	if f.busyErr != nil {
		return false, f.busyErr
	}
	return f.busy, nil
}

func (f *fakeEngine) Quit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("quit")
	return nil
}

// finish simulates the engine reaching the end of the loaded track.
func (f *fakeEngine) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
}

func (f *fakeEngine) setLoadErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErrs[name] = err
}

func (f *fakeEngine) setBusyErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busyErr = err
}

func (f *fakeEngine) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeEngine) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeEngine) Loaded() track.Track {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func testPlaylist(names ...string) *playlist.Playlist {
	tracks := make([]track.Track, len(names))
	for i, name := range names {
		tracks[i] = track.New("/music/" + name)
	}
	return playlist.New("music", "/music", tracks)
}

func newTestController(loop bool, names ...string) (*Controller, *fakeEngine) {
	engine := newFakeEngine()
	c := NewController(Config{Loop: loop, SessionID: "test-session"}, testPlaylist(names...), engine)
	return c, engine
}

// drainEvents returns the events currently buffered on the channel.
func drainEvents(c *Controller) []Event {
	var events []Event
	for {
		select {
		case e, ok := <-c.Events():
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}
