package hook

import (
	"encoding/json"
	"io"
	"log/slog"
)

// Payload is the JSON document Clawed Code pipes to the hook on stdin.
// Only the fields we act on are decoded; unknown fields are ignored.
type Payload struct {
	SessionID        string `json:"session_id"`
	CWD              string `json:"cwd"`
	TranscriptPath   string `json:"transcript_path"`
	ToolName         string `json:"tool_name"`
	NotificationType string `json:"notification_type"`
}

// DecodePayload reads the event payload from r. Absent or malformed input is
// tolerated: the hook still runs with an empty payload, since a missed field
// is cheaper than blocking the runtime's hook point.
func DecodePayload(r io.Reader) Payload {
	var p Payload
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		hookLog.Warn("payload_parse_failed", slog.String("error", err.Error()))
		return Payload{}
	}
	return p
}
