// Package console provides the interactive command prompt.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/playback"
)

// Usage lists the accepted commands.
const Usage = "Commands: play [index], pause, resume, stop, next, prev, list, status, help, quit"

// Player is the command surface the console drives.
type Player interface {
	List() []playback.Entry
	Play() error
	PlayAt(index int) error
	Pause() error
	Resume() error
	Stop() error
	Next() error
	Previous() error
	Status() (playback.Status, error)
}

// LineReader reads one line of user input.
// io.EOF and readline.ErrInterrupt end the session.
type LineReader interface {
	Readline() (string, error)
}

// Console maps command lines to player calls and reports the outcome.
type Console struct {
	player Player
	out    io.Writer
}

// New creates a console writing its messages to out.
func New(player Player, out io.Writer) *Console {
	return &Console{player: player, out: out}
}

// Run executes commands until quit, end of input or interrupt.
func (c *Console) Run(r LineReader) error {
	for {
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(c.out)
				return nil
			}
			return errors.Wrap(err, "failed to read command")
		}
		if !c.Execute(line) {
			return nil
		}
	}
}

// Execute runs a single command line. It returns false when the user quits.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	action := strings.ToLower(parts[0])
	zlog.Debug().Msgf("console: command=%s args=%v", action, parts[1:])

	switch action {
	case "play":
		c.play(parts[1:])
	case "pause":
		if c.check(c.player.Pause()) {
			c.println("Paused.")
		}
	case "resume":
		if c.check(c.player.Resume()) {
			c.println("Resumed.")
		}
	case "stop":
		if c.check(c.player.Stop()) {
			c.println("Stopped.")
		}
	case "next", "skip":
		c.check(c.player.Next())
	case "prev", "previous":
		c.check(c.player.Previous())
	case "list":
		c.List()
	case "status":
		c.status()
	case "help":
		c.println(Usage)
	case "quit", "exit":
		return false
	default:
		c.println("Unknown command.")
	}
	return true
}

// List prints the playlist, marking the playing track.
func (c *Console) List() {
	entries := c.player.List()
	if len(entries) == 0 {
		c.println("No tracks found.")
		return
	}

	for _, e := range entries {
		marker := "  "
		if e.Current {
			marker = "->"
		}
		fmt.Fprintf(c.out, "%s [%d] %s\n", marker, e.Index, e.Track.Name)
	}
}

// PrintUsage prints the command summary.
func (c *Console) PrintUsage() {
	c.println(Usage)
}

func (c *Console) play(args []string) {
	if len(args) == 0 {
		c.check(c.player.Play())
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid index: %s\n", args[0])
		return
	}

	err = c.player.PlayAt(index)
	if errors.Is(err, playback.ErrIndexOutOfRange) {
		fmt.Fprintf(c.out, "Index %d out of range.\n", index)
		return
	}
	c.check(err)
}

func (c *Console) status() {
	s, err := c.player.Status()
	if errors.Is(err, playback.ErrNoTrack) {
		c.println("No track loaded.")
		return
	}
	if !c.check(err) {
		return
	}
	fmt.Fprintf(c.out, "Track: %s\n", s.Track.Name)
	fmt.Fprintf(c.out, "State: %s\n", s.State)
}

// check reports err to the user and returns true when there was none.
func (c *Console) check(err error) bool {
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, playback.ErrPlaylistEmpty):
		c.println("Playlist is empty.")
	case errors.Is(err, playback.ErrNotPlaying):
		c.println("Nothing is currently playing.")
	case errors.Is(err, playback.ErrNotPaused):
		c.println("Player is not paused.")
	case errors.Is(err, playback.ErrNoTrack):
		c.println("No tracks available.")
	default:
		zlog.Error().Err(err).Msg("console: command failed")
		fmt.Fprintf(c.out, "Playback failed: %v\n", err)
	}
	return false
}

func (c *Console) println(msg string) {
	fmt.Fprintln(c.out, msg)
}
