package console

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingReader blocks in Readline until it is closed, like a terminal
// waiting for input.
type blockingReader struct {
	reading chan struct{}
	closed  chan struct{}
	once    sync.Once
}

func newBlockingReader() *blockingReader {
	return &blockingReader{
		reading: make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
}

func (r *blockingReader) Readline() (string, error) {
	select {
	case r.reading <- struct{}{}:
	default:
	}
	<-r.closed
	return "", io.EOF
}

func (r *blockingReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func (r *blockingReader) isClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}

// runAsync starts Run and returns a channel receiving its result.
func runAsync(c *Console, r LineReader) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- c.Run(r)
	}()
	return result
}

func TestRun_ReaderClosedMidRead(t *testing.T) {
	p := newFakePlayer()
	var out bytes.Buffer
	r := newBlockingReader()

	result := runAsync(New(p, &out), r)
	<-r.reading
	require.NoError(t, r.Close())

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the reader was closed")
	}
	assert.Empty(t, p.calls)
	assert.Equal(t, "\n", out.String())
}

func TestCloseOn_SignalClosesReader(t *testing.T) {
	var out bytes.Buffer
	r := newBlockingReader()
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)

	result := runAsync(New(newFakePlayer(), &out), r)
	<-r.reading
	go closeOn(sigCh, done, r)
	sigCh <- os.Interrupt

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the signal")
	}
	assert.True(t, r.isClosed())
}

func TestCloseOn_StopLeavesReaderOpen(t *testing.T) {
	r := newBlockingReader()
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		closeOn(sigCh, done, r)
		close(finished)
	}()
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.False(t, r.isClosed())
}

func TestCloseOnSignal_Stop(t *testing.T) {
	r := newBlockingReader()

	stop := CloseOnSignal(r, os.Interrupt)
	stop()

	assert.False(t, r.isClosed())
}
