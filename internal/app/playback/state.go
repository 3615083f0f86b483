// Package playback provides playlist playback control and end-of-track monitoring.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota // Nothing playing
	StatePlaying              // Track is playing
	StatePaused               // Track is paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// CanPause reports whether a pause is a valid transition from s.
func (s State) CanPause() bool {
	return s == StatePlaying
}

// CanResume reports whether a resume is a valid transition from s.
func (s State) CanResume() bool {
	return s == StatePaused
}
