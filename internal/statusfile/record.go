package statusfile

import (
	"time"
)

// Status values a session record can hold.
const (
	StatusIdle       = "idle"
	StatusWorking    = "working"
	StatusNeedsInput = "needs_input"
	StatusCompleted  = "completed"
)

// DefaultTitle is the placeholder title until one is resolved from the
// session transcript. Once a record holds anything else, the title is sticky.
const DefaultTitle = "New Session"

// SessionRecord is the per-session status document the monitoring UI polls.
// One file per session id under the sessions directory.
type SessionRecord struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	Title          string `json:"title"`
	CWD            string `json:"cwd"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	Timestamp      string `json:"timestamp"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// LegacyStatus is the single-slot global status kept for consumers that
// predate per-session records. Overwritten on every event, never deleted.
type LegacyStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Tool      string `json:"tool,omitempty"`
	Session   string `json:"session,omitempty"`
}

// UTCTimestamp formats t as ISO-8601 UTC with a trailing literal Z,
// matching what the monitoring UI parses.
func UTCTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "Z"
}

// ParseUTCTimestamp parses a timestamp produced by UTCTimestamp.
func ParseUTCTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
