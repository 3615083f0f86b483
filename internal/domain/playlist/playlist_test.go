package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/dirbox/internal/domain/track"
)

func TestPlaylist_Empty(t *testing.T) {
	var nilPlaylist *Playlist
	assert.True(t, nilPlaylist.IsEmpty())
	assert.Equal(t, 0, nilPlaylist.Len())

	p := New("empty", "/empty", nil)
	assert.True(t, p.IsEmpty())
	assert.Equal(t, 0, p.Len())
}

func TestPlaylist_Len(t *testing.T) {
	p := New("music", "/music", []track.Track{{Name: "a.mp3"}, {Name: "b.mp3"}})

	assert.Equal(t, 2, p.Len())
	assert.False(t, p.IsEmpty())
}

func TestNew_CopiesTracks(t *testing.T) {
	tracks := []track.Track{{Name: "a.mp3"}, {Name: "b.mp3"}}
	p := New("music", "/music", tracks)

	tracks[0].Name = "changed.mp3"

	assert.Equal(t, "a.mp3", p.Tracks[0].Name)
	assert.Equal(t, "music", p.Name)
	assert.Equal(t, "/music", p.Dir)
}
