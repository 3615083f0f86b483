package playback

import "github.com/osa030/dirbox/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted   EventType = iota // Track started playing
	EventTrackEnded                      // Track finished playing naturally
	EventStateChanged                    // Playback state changed (pause/resume/stop)
	EventPlaylistEnded                   // Last track finished and loop is disabled
	EventPlaybackFailed                  // Engine failed to start a track
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventStateChanged:
		return "state_changed"
	case EventPlaylistEnded:
		return "playlist_ended"
	case EventPlaybackFailed:
		return "playback_failed"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type  EventType
	Index int          // Index of Track in the playlist
	Track *track.Track // Track the event refers to (nil for some events)
	State State        // Playback state after the event
	Err   error        // Set for EventPlaybackFailed
}
