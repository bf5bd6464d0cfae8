package infrastructure

import (
	"math"
	"time"

	"github.com/yourusername/shazam-dl-go/internal/domain"
)

// ProgressThrottle limits how often progress reaches the notification bridge.
// A value passes when it moved by at least minDelta points or when interval
// has elapsed since the last delivered value. The first value always passes.
type ProgressThrottle struct {
	minDelta  float64
	interval  time.Duration
	now       func() time.Time
	last      domain.ProgressState
	delivered bool
}

// NewProgressThrottle creates a throttle; now defaults to time.Now
func NewProgressThrottle(minDelta float64, interval time.Duration, now func() time.Time) *ProgressThrottle {
	if now == nil {
		now = time.Now
	}
	return &ProgressThrottle{
		minDelta: minDelta,
		interval: interval,
		now:      now,
	}
}

// Allow reports whether percent should be delivered, and records it if so
func (t *ProgressThrottle) Allow(percent float64) bool {
	now := t.now()
	if t.delivered &&
		math.Abs(percent-t.last.PercentComplete) < t.minDelta &&
		now.Sub(t.last.LastUpdate) < t.interval {
		return false
	}
	t.last = domain.ProgressState{PercentComplete: percent, LastUpdate: now}
	t.delivered = true
	return true
}

// Wrap returns a progress function that forwards only allowed values to fn
func (t *ProgressThrottle) Wrap(fn domain.ProgressFunc) domain.ProgressFunc {
	return func(percent float64) {
		if fn != nil && t.Allow(percent) {
			fn(percent)
		}
	}
}

// State returns the last delivered progress
func (t *ProgressThrottle) State() domain.ProgressState {
	return t.last
}
