// Package throttle limits how fast a single text player may take turns.
package throttle

import (
	"sync"
	"time"
)

// Config holds turn throttling settings.
type Config struct {
	Enabled  bool
	MaxTurns int           // turns allowed inside Window
	Window   time.Duration // sliding window length
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		MaxTurns: 10,
		Window:   10 * time.Second,
	}
}

// Result is the outcome of a Check.
type Result struct {
	Allowed     bool
	WaitSeconds int // how long until a turn is allowed again
}

// Tracker counts the turns of one connection.
type Tracker struct {
	mu     sync.Mutex
	config Config
	turns  []time.Time
	now    func() time.Time
}

// NewTracker creates a tracker. A non-positive MaxTurns or Window disables it.
func NewTracker(config Config) *Tracker {
	if config.MaxTurns <= 0 || config.Window <= 0 {
		config.Enabled = false
	}
	t := &Tracker{config: config, now: time.Now}
	if config.Enabled {
		t.turns = make([]time.Time, 0, config.MaxTurns)
	}
	return t
}

// Check records a turn if the window has room for it.
func (t *Tracker) Check() Result {
	if !t.config.Enabled {
		return Result{Allowed: true}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.expire(now)

	if len(t.turns) >= t.config.MaxTurns {
		remaining := t.turns[0].Add(t.config.Window).Sub(now)
		return Result{WaitSeconds: int(remaining.Seconds()) + 1}
	}

	t.turns = append(t.turns, now)
	return Result{Allowed: true}
}

// expire drops turns that fell out of the window.
func (t *Tracker) expire(now time.Time) {
	cutoff := now.Add(-t.config.Window)
	kept := t.turns[:0]
	for _, at := range t.turns {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	t.turns = kept
}

// Reset forgets every recorded turn.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = t.turns[:0]
}
