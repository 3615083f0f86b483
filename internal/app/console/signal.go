package console

import (
	"io"
	"os"
	"os/signal"

	zlog "github.com/rs/zerolog/log"
)

// CloseOnSignal closes r when one of sigs arrives, so that a pending Run
// returns the same way as on quit. The returned function stops watching.
func CloseOnSignal(r io.Closer, sigs ...os.Signal) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	done := make(chan struct{})
	go closeOn(sigCh, done, r)

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func closeOn(sigCh <-chan os.Signal, done <-chan struct{}, r io.Closer) {
	select {
	case sig := <-sigCh:
		zlog.Debug().Msgf("console: received %s, closing input", sig)
		if err := r.Close(); err != nil {
			zlog.Warn().Err(err).Msg("console: failed to close input")
		}
	case <-done:
	}
}
