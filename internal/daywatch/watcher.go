// Package daywatch notifies when the local date changes.
//
// A Watcher keeps a single timer armed for the next local midnight. The
// calendar uses it to move the today flag without polling.
package daywatch

import (
	"sync"
	"time"

	"github.com/Iron-Ham/calgrid/internal/calendar"
	"github.com/Iron-Ham/calgrid/internal/event"
	"github.com/Iron-Ham/calgrid/internal/logging"
)

// Watcher fires once per local midnight until stopped.
type Watcher struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// OnDayChange receives the date that just started. It runs on the timer
	// goroutine.
	OnDayChange func(calendar.Date)
	// Bus, when set, receives a DayChangedEvent for every midnight.
	Bus    *event.Bus
	Logger *logging.Logger

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// NextMidnight returns the start of the day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Start arms the timer. Calling Start on a running watcher does nothing.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.armLocked()
}

// Stop cancels the pending timer. A callback that is already running is not
// interrupted. Stop is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Running reports whether a timer is armed.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Watcher) logger() *logging.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return logging.NopLogger()
}

// armLocked schedules the next firing. w.mu must be held.
func (w *Watcher) armLocked() {
	now := w.now()
	target := NextMidnight(now)
	w.timer = time.AfterFunc(target.Sub(now), func() { w.fire(target) })
	w.logger().Debug("day watcher armed", "fires_at", target.Format(time.RFC3339))
}

func (w *Watcher) fire(target time.Time) {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.armLocked()
	cb := w.OnDayChange
	w.mu.Unlock()

	today := calendar.DateOf(target)
	w.logger().Info("day changed", "today", today.String())
	if cb != nil {
		cb(today)
	}
	w.Bus.Publish(event.NewDayChangedEvent(today))
}
