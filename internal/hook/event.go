package hook

import (
	"github.com/clawed-code/clawmon/internal/statusfile"
)

// Lifecycle events Clawed Code delivers to the hook, passed as the single
// positional argument.
const (
	EventPreToolUse   = "PreToolUse"
	EventPostToolUse  = "PostToolUse"
	EventNotification = "Notification"
	EventStop         = "Stop"
	EventSessionStart = "SessionStart"
	EventSessionEnd   = "SessionEnd"
)

// NotificationIdlePrompt is the notification subtype emitted after ~60s of
// inactivity. It is not a real input request and is filtered out.
const NotificationIdlePrompt = "idle_prompt"

// MapEventToStatus maps a lifecycle event to the status it writes.
// Status semantics for the monitoring UI:
//   - "idle"        = session open, nothing happening
//   - "working"     = agent is executing tools
//   - "needs_input" = agent is waiting on the user
//   - "completed"   = main agent finished its turn
//
// SessionEnd maps to "idle": its record is deleted, but the legacy slot still
// receives the mapped status. Unknown events map to "".
func MapEventToStatus(event string) string {
	switch event {
	case EventPreToolUse, EventPostToolUse:
		return statusfile.StatusWorking
	case EventNotification:
		return statusfile.StatusNeedsInput
	case EventStop:
		return statusfile.StatusCompleted
	case EventSessionStart, EventSessionEnd:
		return statusfile.StatusIdle
	default:
		return ""
	}
}
