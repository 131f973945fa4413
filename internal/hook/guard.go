package hook

import (
	"time"

	"github.com/clawed-code/clawmon/internal/statusfile"
)

// Guard absorbs the automatic tool calls some runtimes issue right after
// session start (workspace discovery Glob/Bash) before the user has typed
// anything. Those fire PreToolUse only, so suppressing PreToolUse inside a
// short window after the record first appears keeps the displayed status at
// "idle" until real work begins. It is a heuristic, applied to PreToolUse
// and nothing else.
type Guard struct {
	store     *statusfile.Store
	threshold time.Duration
}

// NewGuard returns a guard over store with the given window.
func NewGuard(store *statusfile.Store, threshold time.Duration) *Guard {
	return &Guard{store: store, threshold: threshold}
}

// IsInitializing reports whether the session's record exists and is younger
// than the window. No record at all means the session is not initializing:
// there is nothing to flap.
func (g *Guard) IsInitializing(sessionID string) bool {
	age, ok := g.store.RecordAge(sessionID)
	if !ok {
		return false
	}
	return age < g.threshold
}
