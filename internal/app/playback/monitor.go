package playback

import (
	"time"

	zlog "github.com/rs/zerolog/log"
)

// monitor polls the engine until the controller is closed.
// The engine does not report track completion, so a finished track is
// detected within one poll interval.
func (c *Controller) monitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			zlog.Debug().Str("session", c.config.SessionID).Msg("playback: monitor stopped")
			return
		case <-ticker.C:
			c.checkCompletion()
		}
	}
}

// checkCompletion runs one monitor cycle: when the current track has ended it
// advances to the next one, or stops at the end of a non-looping playlist.
func (c *Controller) checkCompletion() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != StatePlaying {
		return
	}

	busy, err := c.engine.IsBusy()
	if err != nil {
		zlog.Warn().Err(err).Msg("playback: busy check failed")
		return
	}
	if busy || c.current == noTrack {
		return
	}

	index := c.current
	ended := c.tracks.Tracks[index]
	zlog.Debug().Msgf("playback: track ended: index=%d track=%s", index, ended.Name)
	c.sendEventLocked(Event{
		Type:  EventTrackEnded,
		Index: index,
		Track: &ended,
		State: c.state,
	})

	if index == c.tracks.Len()-1 && !c.config.Loop {
		c.state = StateStopped
		zlog.Debug().Str("session", c.config.SessionID).Msg("playback: reached end of playlist")
		c.sendEventLocked(Event{
			Type:  EventPlaylistEnded,
			Index: index,
			Track: &ended,
			State: c.state,
		})
		return
	}

	c.current = (index + 1) % c.tracks.Len()
	if err := c.playCurrentLocked(); err != nil {
		zlog.Error().Err(err).Msgf("playback: auto-advance failed: index=%d", c.current)
		failed := c.tracks.Tracks[c.current]
		c.sendEventLocked(Event{
			Type:  EventPlaybackFailed,
			Index: c.current,
			Track: &failed,
			State: c.state,
			Err:   err,
		})
	}
}
