// internal/game/timer.go
//
// Per-turn countdown timer.
// Responsibilities:
//   - Count down once per tick from the configured turn length.
//   - Invoke the expiry callback exactly once per arming when it hits zero,
//     then stay inert until the next Reset.
//   - Stop cleanly on teardown: no ticks and no callbacks after Stop returns
//     the goroutine.
//
// The tick interval is injectable so tests can run simulated seconds at
// millisecond speed; production uses one real second.

package game

import (
	"sync"
	"time"
)

// TurnTimer is the countdown for a single session. At most one live countdown
// exists per session; the owning session arms it on every turn change and
// stops it on game over, reset, or teardown.
type TurnTimer struct {
	seconds  int
	tick     time.Duration
	onExpire func()

	mu        sync.Mutex
	remaining int
	stopped   bool

	stopCh  chan struct{}
	resetCh chan struct{}
}

// NewTurnTimer starts a countdown of the given length. A non-positive length
// returns an inert timer whose methods are all no-ops (unlimited turns).
// onExpire runs on the timer's goroutine; it must be safe to call from there.
func NewTurnTimer(seconds int, tick time.Duration, onExpire func()) *TurnTimer {
	t := &TurnTimer{
		seconds:  seconds,
		tick:     tick,
		onExpire: onExpire,
		// Buffered so a Reset issued from inside onExpire never blocks
		// against the timer's own goroutine.
		resetCh: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
	if seconds <= 0 {
		t.stopped = true
		return t
	}
	t.remaining = seconds
	go t.run()
	return t
}

func (t *TurnTimer) run() {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-t.resetCh:
			t.mu.Lock()
			t.remaining = t.seconds
			t.mu.Unlock()
		case <-ticker.C:
			t.mu.Lock()
			if t.remaining <= 0 {
				// Already expired; inert until the next Reset.
				t.mu.Unlock()
				continue
			}
			t.remaining--
			expired := t.remaining == 0
			t.mu.Unlock()
			if expired {
				t.onExpire()
			}
		}
	}
}

// Reset re-arms the countdown to the full turn length. Called on every turn
// change. Safe to call from within onExpire.
func (t *TurnTimer) Reset() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	select {
	case t.resetCh <- struct{}{}:
	default: // a reset is already pending; coalesce
	}
}

// Stop tears the timer down. Idempotent; after the goroutine drains the stop
// signal no further callbacks fire.
func (t *TurnTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stopCh)
}

// Remaining reports the seconds left in the current turn (0 for an inert
// timer).
func (t *TurnTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}
