package transcript

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/clawed-code/clawmon/internal/logging"
)

var titleLog = logging.ForComponent(logging.CompTranscript)

// DefaultTitle is returned when no user message can be extracted.
const DefaultTitle = "New Session"

// MaxTitleLength caps how long a session title can be.
const MaxTitleLength = 100

// transcriptLine covers both shapes a user turn takes in a transcript:
// the Claude Code envelope {"type":"user","message":{"role":"user",...}}
// and flat records carrying their own role field.
type transcriptLine struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// contentBlock is one element of a multimodal content array.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ResolveTitle derives a session title from the first user-authored message
// in the transcript log. The scan stops at the first non-empty user turn.
// Absent or unreadable transcripts, and transcripts with no user text, yield
// DefaultTitle. Read-only; no side effects.
func ResolveTitle(path string) string {
	if path == "" {
		return DefaultTitle
	}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			titleLog.Warn("transcript_open_failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return DefaultTitle
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 256*1024), 10*1024*1024) // tool outputs can be huge

	for sc.Scan() {
		var line transcriptLine
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			continue // malformed lines are skipped, not fatal
		}

		var raw json.RawMessage
		switch {
		case line.Type == "user" && line.Message.Role == "user":
			raw = line.Message.Content
		case line.Role == "user":
			raw = line.Content
		default:
			continue
		}

		text := extractText(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		return Truncate(text)
	}

	if err := sc.Err(); err != nil {
		titleLog.Warn("transcript_scan_failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
	return DefaultTitle
}

// extractText returns the text payload of a content value, which is either a
// plain string or an array of typed blocks (multimodal turns). The first
// text block wins; an array with no text block yields "".
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	for _, b := range blocks {
		if b.Type == "text" {
			return b.Text
		}
	}
	return ""
}

// Truncate caps a title at MaxTitleLength runes, replacing the tail with
// "..." so the result is exactly MaxTitleLength when truncation happens.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTitleLength {
		return s
	}
	return string(runes[:MaxTitleLength-3]) + "..."
}
