package asynchandler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/handler"
)

// Config holds configuration for the async wrapper
type Config struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
	// OnError receives write failures from the background goroutine
	OnError func(error)
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = handler.DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// Handler puts a handler behind a bounded queue drained by one background
// goroutine. Entries are copied on enqueue, so callers may recycle theirs
// as soon as Handle returns.
type Handler struct {
	next           handler.Handler
	queue          chan *core.Entry
	wg             sync.WaitGroup
	mu             sync.Mutex // serializes writes to next between process and fallbacks
	overflowPolicy map[core.Level]handler.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	onError        func(error)
	stats          *handler.Stats
	pending        atomic.Int64 // queued or being written
	closeOnce      sync.Once
	closed         chan struct{}
}

// New wraps next and starts the background goroutine.
func New(next handler.Handler, cfg Config) *Handler {
	applyDefaults(&cfg)

	h := &Handler{
		next:           next,
		queue:          make(chan *core.Entry, cfg.BufferSize),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		onError:        cfg.OnError,
		stats:          handler.NewStats(),
		closed:         make(chan struct{}),
	}

	h.wg.Add(1)
	go h.process()

	return h
}

// Handle enqueues a copy of the entry, applying the level's overflow
// policy when the queue is full.
func (h *Handler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return h.write(entry)
	default:
	}

	queued := core.CloneEntry(entry)
	h.pending.Add(1)

	policy, ok := h.overflowPolicy[entry.Level]
	if !ok {
		policy = handler.DropNewest
	}

	switch policy {
	case handler.Block:
		select {
		case h.queue <- queued:
			return nil
		default:
		}

		timer := time.NewTimer(h.blockTimeout)
		defer timer.Stop()
		select {
		case h.queue <- queued:
			return nil
		case <-timer.C:
			// still full, write on the caller's goroutine instead of losing it
			h.stats.IncrementBlocked()
			return h.writeNow(queued)
		case <-h.closed:
			return h.writeNow(queued)
		}

	case handler.DropOldest:
		select {
		case h.queue <- queued:
			return nil
		default:
		}
		select {
		case oldest := <-h.queue:
			h.drop(oldest)
		default:
		}
		select {
		case h.queue <- queued:
			return nil
		default:
			h.drop(queued)
			return nil
		}

	default:
		select {
		case h.queue <- queued:
			return nil
		default:
			h.drop(queued)
			return nil
		}
	}
}

// write hands the entry to the wrapped handler.
func (h *Handler) write(entry *core.Entry) error {
	h.mu.Lock()
	err := h.next.Handle(entry)
	h.mu.Unlock()
	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// writeNow writes a copied entry on the caller's goroutine.
func (h *Handler) writeNow(entry *core.Entry) error {
	err := h.write(entry)
	core.PutEntry(entry)
	h.pending.Add(-1)
	return err
}

func (h *Handler) writeQueued(entry *core.Entry) {
	if err := h.write(entry); err != nil && h.onError != nil {
		h.onError(err)
	}
	core.PutEntry(entry)
	h.pending.Add(-1)
}

func (h *Handler) drop(entry *core.Entry) {
	h.stats.IncrementDropped(entry.Level)
	core.PutEntry(entry)
	h.pending.Add(-1)
}

// process drains the queue until Close.
func (h *Handler) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			h.writeQueued(entry)
		case <-h.closed:
			deadline := time.After(h.drainTimeout)
			for {
				select {
				case entry := <-h.queue:
					h.writeQueued(entry)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// CanRecycleEntry returns true because Handle copies the entry.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Flush waits, up to the drain timeout, until every queued entry has been
// written, then flushes the wrapped handler.
func (h *Handler) Flush() error {
	deadline := time.Now().Add(h.drainTimeout)
	for h.pending.Load() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return handler.Flush(h.next)
}

// Stats returns a snapshot of the current statistics
func (h *Handler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the queue with a timeout and closes the wrapped handler.
func (h *Handler) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.closed)
		h.wg.Wait()
		err = h.next.Close()
	})
	return err
}
