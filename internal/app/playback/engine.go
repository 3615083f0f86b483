package playback

import "github.com/osa030/dirbox/internal/domain/track"

// Engine is the audio decode/output capability the controller delegates to.
// Implementations need not be safe for concurrent use; the controller
// serializes every call under its lock.
type Engine interface {
	// Init prepares the output device.
	Init() error
	// Load prepares a track for playback, replacing any loaded track.
	Load(t track.Track) error
	// Play starts the loaded track from the beginning.
	Play() error
	Pause() error
	Unpause() error
	// Stop halts playback. Stopping an idle engine is not an error.
	Stop() error
	// IsBusy reports whether the loaded track is still playing.
	IsBusy() (bool, error)
	// Quit releases the output device.
	Quit() error
}
