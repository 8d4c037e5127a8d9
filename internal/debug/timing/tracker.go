package timing

import (
	"context"
	"sync"
	"time"

	"idcard-merger/internal/logger"
)

// maxSamples bounds the per-operation history kept for Samples.
const maxSamples = 64

type spanKey struct{}

type span struct {
	operation string
	started   time.Time
}

// Stats summarises every completed measurement of one operation.
type Stats struct {
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

type record struct {
	stats   Stats
	samples []time.Duration
}

func (r *record) add(d time.Duration) {
	if r.stats.Count == 0 || d < r.stats.Min {
		r.stats.Min = d
	}
	if d > r.stats.Max {
		r.stats.Max = d
	}
	r.stats.Count++
	r.stats.Total += d
	r.stats.Last = d

	if len(r.samples) == maxSamples {
		r.samples = append(r.samples[:0], r.samples[1:]...)
	}
	r.samples = append(r.samples, d)
}

// Tracker measures named operations. Each finished measurement is logged
// at debug level.
type Tracker struct {
	mu      sync.RWMutex
	records map[string]*record
	enabled bool

	logger logger.Logger
	now    func() time.Time
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Tracker{
		records: make(map[string]*record),
		enabled: true,
		logger:  log,
		now:     time.Now,
	}
}

// StartTiming returns a context carrying the start of operation. Pass it to
// EndTiming when the operation finishes.
func (t *Tracker) StartTiming(operation string) context.Context {
	ctx := context.Background()
	if !t.Enabled() {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, span{operation: operation, started: t.now()})
}

func (t *Tracker) EndTiming(ctx context.Context) {
	s, ok := ctx.Value(spanKey{}).(span)
	if !ok || !t.Enabled() {
		return
	}
	elapsed := t.now().Sub(s.started)

	t.mu.Lock()
	r := t.records[s.operation]
	if r == nil {
		r = &record{}
		t.records[s.operation] = r
	}
	r.add(elapsed)
	count := r.stats.Count
	t.mu.Unlock()

	t.logger.Debug("Timing", "operation completed", map[string]interface{}{
		"operation":   s.operation,
		"duration_ms": elapsed.Milliseconds(),
		"count":       count,
	})
}

// Samples returns the most recent durations of operation, oldest first.
func (t *Tracker) Samples(operation string) []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r := t.records[operation]
	if r == nil {
		return nil
	}
	out := make([]time.Duration, len(r.samples))
	copy(out, r.samples)
	return out
}

func (t *Tracker) Stats(operation string) (Stats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r := t.records[operation]
	if r == nil {
		return Stats{}, false
	}
	return r.stats, true
}

func (t *Tracker) SetEnabled(enabled bool) {
	t.mu.Lock()
	t.enabled = enabled
	t.mu.Unlock()
}

func (t *Tracker) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Reset forgets one operation, or everything when operation is empty.
func (t *Tracker) Reset(operation string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if operation == "" {
		clear(t.records)
		return
	}
	delete(t.records, operation)
}
