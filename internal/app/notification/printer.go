// Package notification reports playback events to the user.
package notification

import (
	"fmt"
	"io"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/playback"
)

// Printer writes user-facing messages for playback events.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Run prints events until the channel is closed.
func (p *Printer) Run(events <-chan playback.Event) {
	for e := range events {
		p.Handle(e)
	}
	zlog.Debug().Msg("notification: event stream closed")
}

// Handle prints a single event. Events without a message are ignored.
func (p *Printer) Handle(e playback.Event) {
	switch e.Type {
	case playback.EventTrackStarted:
		if e.Track != nil {
			fmt.Fprintf(p.out, "Playing: %s\n", e.Track.Name)
		}
	case playback.EventPlaylistEnded:
		fmt.Fprintln(p.out, "Reached end of playlist.")
	case playback.EventPlaybackFailed:
		fmt.Fprintf(p.out, "Playback failed: %v\n", e.Err)
	}
}
