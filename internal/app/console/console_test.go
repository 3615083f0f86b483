package console

import (
	"bytes"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/dirbox/internal/app/playback"
	"github.com/osa030/dirbox/internal/domain/track"
)

type fakePlayer struct {
	calls   []string
	entries []playback.Entry
	status  playback.Status
	errs    map[string]error
	playAt  []int
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{errs: make(map[string]error)}
}

func (p *fakePlayer) record(name string) error {
	p.calls = append(p.calls, name)
	return p.errs[name]
}

func (p *fakePlayer) List() []playback.Entry { return p.entries }
func (p *fakePlayer) Play() error            { return p.record("play") }
func (p *fakePlayer) Pause() error           { return p.record("pause") }
func (p *fakePlayer) Resume() error          { return p.record("resume") }
func (p *fakePlayer) Stop() error            { return p.record("stop") }
func (p *fakePlayer) Next() error            { return p.record("next") }
func (p *fakePlayer) Previous() error        { return p.record("previous") }

func (p *fakePlayer) PlayAt(index int) error {
	p.playAt = append(p.playAt, index)
	return p.record("playAt")
}

func (p *fakePlayer) Status() (playback.Status, error) {
	return p.status, p.record("status")
}

type scriptReader struct {
	lines []string
	err   error
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestExecute_Commands(t *testing.T) {
	tests := []struct {
		line     string
		expected string
		output   string
	}{
		{line: "play", expected: "play"},
		{line: "pause", expected: "pause", output: "Paused.\n"},
		{line: "resume", expected: "resume", output: "Resumed.\n"},
		{line: "stop", expected: "stop", output: "Stopped.\n"},
		{line: "next", expected: "next"},
		{line: "skip", expected: "next"},
		{line: "prev", expected: "previous"},
		{line: "previous", expected: "previous"},
		{line: "  PAUSE  ", expected: "pause", output: "Paused.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p := newFakePlayer()
			var out bytes.Buffer
			c := New(p, &out)

			assert.True(t, c.Execute(tt.line))
			assert.Equal(t, []string{tt.expected}, p.calls)
			assert.Equal(t, tt.output, out.String())
		})
	}
}

func TestExecute_PlayIndex(t *testing.T) {
	p := newFakePlayer()
	var out bytes.Buffer
	c := New(p, &out)

	c.Execute("play 2")
	assert.Equal(t, []int{2}, p.playAt)

	p.errs["playAt"] = errors.Wrap(playback.ErrIndexOutOfRange, "index 7")
	c.Execute("play 7")
	assert.Equal(t, "Index 7 out of range.\n", out.String())

	out.Reset()
	c.Execute("play abc")
	assert.Equal(t, "Invalid index: abc\n", out.String())
	assert.Equal(t, []int{2, 7}, p.playAt, "invalid index never reaches the player")
}

func TestExecute_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		call   string
		err    error
		output string
	}{
		{name: "empty playlist", line: "play", call: "play", err: playback.ErrPlaylistEmpty, output: "Playlist is empty.\n"},
		{name: "pause idle", line: "pause", call: "pause", err: playback.ErrNotPlaying, output: "Nothing is currently playing.\n"},
		{name: "resume unpaused", line: "resume", call: "resume", err: playback.ErrNotPaused, output: "Player is not paused.\n"},
		{name: "next empty", line: "next", call: "next", err: playback.ErrNoTrack, output: "No tracks available.\n"},
		{name: "engine failure", line: "play", call: "play", err: errors.New("device busy"), output: "Playback failed: device busy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlayer()
			p.errs[tt.call] = tt.err
			var out bytes.Buffer

			assert.True(t, New(p, &out).Execute(tt.line))
			assert.Equal(t, tt.output, out.String())
		})
	}
}

func TestExecute_List(t *testing.T) {
	p := newFakePlayer()
	p.entries = []playback.Entry{
		{Index: 0, Track: track.Track{Name: "a.mp3"}},
		{Index: 1, Track: track.Track{Name: "b.mp3"}, Current: true},
	}
	var out bytes.Buffer

	New(p, &out).Execute("list")

	assert.Equal(t, "   [0] a.mp3\n-> [1] b.mp3\n", out.String())
}

func TestExecute_ListEmpty(t *testing.T) {
	var out bytes.Buffer

	New(newFakePlayer(), &out).Execute("list")

	assert.Equal(t, "No tracks found.\n", out.String())
}

func TestExecute_Status(t *testing.T) {
	p := newFakePlayer()
	p.status = playback.Status{Index: 1, Track: track.Track{Name: "b.mp3"}, State: playback.StatePaused}
	var out bytes.Buffer
	c := New(p, &out)

	c.Execute("status")
	assert.Equal(t, "Track: b.mp3\nState: paused\n", out.String())

	out.Reset()
	p.errs["status"] = playback.ErrNoTrack
	c.Execute("status")
	assert.Equal(t, "No track loaded.\n", out.String())
}

func TestExecute_Misc(t *testing.T) {
	p := newFakePlayer()
	var out bytes.Buffer
	c := New(p, &out)

	assert.True(t, c.Execute(""))
	assert.True(t, c.Execute("   "))
	assert.Empty(t, out.String())

	assert.True(t, c.Execute("dance"))
	assert.Equal(t, "Unknown command.\n", out.String())

	out.Reset()
	assert.True(t, c.Execute("help"))
	assert.Equal(t, Usage+"\n", out.String())

	assert.False(t, c.Execute("quit"))
	assert.False(t, c.Execute("exit"))
	assert.Empty(t, p.calls)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		reader   *scriptReader
		expected []string
		wantErr  bool
	}{
		{
			name:     "quit stops reading",
			reader:   &scriptReader{lines: []string{"pause", "quit", "stop"}, err: io.EOF},
			expected: []string{"pause"},
		},
		{
			name:     "end of input",
			reader:   &scriptReader{lines: []string{"next"}, err: io.EOF},
			expected: []string{"next"},
		},
		{
			name:     "interrupt",
			reader:   &scriptReader{lines: []string{"prev"}, err: readline.ErrInterrupt},
			expected: []string{"previous"},
		},
		{
			name:     "read failure",
			reader:   &scriptReader{err: errors.New("tty gone")},
			expected: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlayer()
			var out bytes.Buffer

			err := New(p, &out).Run(tt.reader)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to read command")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, p.calls)
		})
	}
}
