// Package debounce coalesces rapid input into a single settled value.
//
// A Debouncer keeps one pending timer per debounced value. Every Bump advances
// a tag and schedules a SettledMsg for that tag; a settle whose tag is no longer
// current is ignored, which is how an earlier timer is cancelled without
// touching the Bubble Tea runtime. Stop makes every later settle a no-op.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the quiet period before a value settles.
const DefaultInterval = 300 * time.Millisecond

// SettledMsg is delivered when a scheduled propagation fires.
type SettledMsg struct {
	Tag int
}

// Debouncer is not safe for concurrent use; it lives inside a Bubble Tea model
// and is only touched from Update.
type Debouncer struct {
	interval time.Duration
	tag      int
	pending  string
	settled  bool
	stopped  bool
}

// New returns a Debouncer with the given quiet interval.
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Interval reports the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Bump records value as the latest input, supersedes any pending propagation
// and returns the command that delivers the new one.
func (d *Debouncer) Bump(value string) tea.Cmd {
	if d.stopped {
		return nil
	}
	d.tag++
	d.pending = value
	d.settled = false
	tag := d.tag
	return tea.Tick(d.interval, func(time.Time) tea.Msg {
		return SettledMsg{Tag: tag}
	})
}

// Settle returns the value to propagate for msg. ok is false for superseded
// tags and after Stop.
func (d *Debouncer) Settle(msg SettledMsg) (value string, ok bool) {
	if d.stopped || d.settled || msg.Tag != d.tag {
		return "", false
	}
	d.settled = true
	return d.pending, true
}

// Tag is the tag of the most recent Bump.
func (d *Debouncer) Tag() int {
	return d.tag
}

// Pending reports whether a propagation is scheduled and not yet settled.
func (d *Debouncer) Pending() bool {
	return !d.stopped && !d.settled && d.tag > 0
}

// Stop cancels any pending propagation permanently.
func (d *Debouncer) Stop() {
	d.stopped = true
}

// Stopped reports whether Stop has been called.
func (d *Debouncer) Stopped() bool {
	return d.stopped
}
