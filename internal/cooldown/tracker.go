// Package cooldown rate-limits command invocations per (user, command) pair.
//
// Entries are kept for the life of the process. With a bounded active-user
// population the map stays small; a long-lived deployment at scale would
// want a periodic sweep.
package cooldown

import (
	"sync"
	"time"
)

type key struct {
	userID  string
	command string
}

// Tracker records the last allowed invocation per (user, command) pair.
// Gateway events arrive on separate goroutines, so access is mutex-guarded.
type Tracker struct {
	mu            sync.Mutex
	defaultWindow time.Duration
	windows       map[string]time.Duration
	last          map[key]time.Time
}

// New returns a tracker using defaultWindow for commands without an
// explicit window.
func New(defaultWindow time.Duration) *Tracker {
	return &Tracker{
		defaultWindow: defaultWindow,
		windows:       make(map[string]time.Duration),
		last:          make(map[key]time.Time),
	}
}

// SetWindow overrides the cooldown window for a single command.
func (t *Tracker) SetWindow(command string, window time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windows[command] = window
}

// Window returns the effective cooldown window for a command.
func (t *Tracker) Window(command string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.window(command)
}

func (t *Tracker) window(command string) time.Duration {
	if w, ok := t.windows[command]; ok {
		return w
	}
	return t.defaultWindow
}

// Check reports whether user may invoke command at now. A denied check
// returns the remaining wait and leaves the stored timestamp untouched;
// an allowed check records now as the new last invocation.
func (t *Tracker) Check(userID, command string, now time.Time) (remaining time.Duration, allowed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key{userID: userID, command: command}
	window := t.window(command)
	if last, ok := t.last[k]; ok {
		if elapsed := now.Sub(last); elapsed < window {
			return window - elapsed, false
		}
	}
	t.last[k] = now
	return 0, true
}
