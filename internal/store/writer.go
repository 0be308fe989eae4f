package store

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
)

// writeOp is a single deferred database write.
type writeOp func(*sql.DB)

// Writer serializes SQLite writes through one goroutine so submission
// persistence never blocks the request path. The queue is bounded: when it
// fills, new writes are dropped rather than stalling callers, and the
// in-memory copy of the record stays authoritative.
type Writer struct {
	db      *sql.DB
	queue   chan writeOp
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

// NewWriter creates an async writer with the given queue capacity.
// Call Run to start processing and Drain before closing the DB.
func NewWriter(db *sql.DB, bufSize int) *Writer {
	if bufSize <= 0 {
		bufSize = 1024
	}
	return &Writer{
		db:    db,
		queue: make(chan writeOp, bufSize),
	}
}

// Run processes queued writes until ctx is cancelled or Drain closes the
// queue. Whatever is already queued at cancellation still gets written.
func (w *Writer) Run(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case op, ok := <-w.queue:
				if !ok {
					return
				}
				op(w.db)
			case <-ctx.Done():
				w.flush()
				return
			}
		}
	}()
}

// flush writes everything currently queued without waiting for more.
func (w *Writer) flush() {
	for {
		select {
		case op, ok := <-w.queue:
			if !ok {
				return
			}
			op(w.db)
		default:
			return
		}
	}
}

// Enqueue queues a write. A full queue drops the write instead of blocking;
// drops are logged at powers of two to keep the log quiet under sustained
// overload.
func (w *Writer) Enqueue(op writeOp) {
	select {
	case w.queue <- op:
	default:
		count := w.dropped.Add(1)
		if count&(count-1) == 0 {
			slog.Warn("async writer: dropping writes due to backpressure",
				"totalDropped", count, "queueCap", cap(w.queue))
		}
	}
}

// DroppedCount returns the number of writes dropped due to backpressure.
func (w *Writer) DroppedCount() uint64 {
	return w.dropped.Load()
}

// Drain waits for all queued writes to be processed. Call this before
// closing the database.
func (w *Writer) Drain() {
	close(w.queue)
	w.wg.Wait()
}
