// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/osa030/dirbox/internal/domain/track"

// Playlist represents the fixed, ordered set of tracks for a session.
// It is not modified after construction.
type Playlist struct {
	Name   string        // Playlist name (directory base name)
	Dir    string        // Directory the tracks were scanned from
	Tracks []track.Track // Tracks in play order
}

// New creates a playlist from the given tracks.
func New(name, dir string, tracks []track.Track) *Playlist {
	copied := make([]track.Track, len(tracks))
	copy(copied, tracks)
	return &Playlist{
		Name:   name,
		Dir:    dir,
		Tracks: copied,
	}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}

// IsEmpty reports whether the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}
