package logger

import (
	"io"
	"sync"
	"sync/atomic"
)

// asyncWriter decouples callers from a slow writer. A console blocked by
// terminal flow control must not stall polling or file logging, so Write
// never blocks: lines are queued and a full queue drops them.
type asyncWriter struct {
	ch      chan []byte
	w       io.Writer
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

func newAsyncWriter(w io.Writer, bufSize int) *asyncWriter {
	aw := &asyncWriter{
		ch:   make(chan []byte, bufSize),
		w:    w,
		done: make(chan struct{}),
	}
	go aw.drain()
	return aw
}

func (aw *asyncWriter) Write(p []byte) (int, error) {
	aw.mu.RLock()
	defer aw.mu.RUnlock()
	if aw.closed {
		return len(p), nil
	}
	line := append([]byte(nil), p...)
	select {
	case aw.ch <- line:
	default:
		aw.dropped.Add(1)
	}
	return len(p), nil
}

func (aw *asyncWriter) drain() {
	defer close(aw.done)
	for p := range aw.ch {
		_, _ = aw.w.Write(p)
	}
}

// Dropped returns how many lines were discarded because the queue was full.
func (aw *asyncWriter) Dropped() uint64 {
	return aw.dropped.Load()
}

// Close flushes queued lines and stops the drain goroutine.
func (aw *asyncWriter) Close() {
	aw.once.Do(func() {
		aw.mu.Lock()
		aw.closed = true
		aw.mu.Unlock()
		close(aw.ch)
		<-aw.done
	})
}
