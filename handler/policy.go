package handler

import (
	"sync/atomic"

	"github.com/philipp01105/dailylog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies.
// Errors and worse never get dropped silently.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel: DropNewest,
		core.InfoLevel:  DropNewest,
		core.WarnLevel:  DropNewest,
		core.ErrorLevel: Block,
		core.FatalLevel: Block,
		core.PanicLevel: Block,
	}
}

// Stats tracks handler statistics
type Stats struct {
	dropped   [core.PanicLevel + 1]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func validLevel(level core.Level) bool {
	return level >= core.DebugLevel && level <= core.PanicLevel
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if validLevel(level) {
		s.dropped[level].Add(1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementFailed atomically increments the write failure counter
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if !validLevel(level) {
		return 0
	}
	return s.dropped[level].Load()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Load()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// GetFailed returns the write failure count
func (s *Stats) GetFailed() uint64 {
	return s.failed.Load()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, len(s.dropped))
	for lvl := core.DebugLevel; lvl <= core.PanicLevel; lvl++ {
		dropped[lvl] = s.GetDropped(lvl)
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
		FailedTotal:    s.GetFailed(),
	}
}

// StatsProvider is implemented by handlers that keep Stats.
type StatsProvider interface {
	Stats() Snapshot
}
