package hook

import (
	"log/slog"
	"time"

	"github.com/clawed-code/clawmon/internal/logging"
	"github.com/clawed-code/clawmon/internal/statusfile"
	"github.com/clawed-code/clawmon/internal/transcript"
)

var hookLog = logging.ForComponent(logging.CompHook)

// Handler processes one lifecycle event against the record store and the
// legacy slot. One Handler serves one invocation; there is no shared state
// beyond what the store persists between invocations.
type Handler struct {
	Store  *statusfile.Store
	Legacy *statusfile.LegacyWriter
	Guard  *Guard

	// ResolveTitle is the transcript title resolver; swappable in tests.
	ResolveTitle func(path string) string
}

// NewHandler wires a handler over the given store and legacy writer.
func NewHandler(store *statusfile.Store, legacy *statusfile.LegacyWriter, guard *Guard) *Handler {
	return &Handler{
		Store:        store,
		Legacy:       legacy,
		Guard:        guard,
		ResolveTitle: transcript.ResolveTitle,
	}
}

// Process applies one event. Storage failures are logged and swallowed: a
// missed status update is cheaper than failing the runtime's hook point, so
// Process never returns an error to its caller.
func (h *Handler) Process(event string, p Payload) {
	// idle_prompt notifications are a false "needs input" signal fired after
	// ~60s of inactivity. Filtered unconditionally, before anything else.
	if event == EventNotification && p.NotificationType == NotificationIdlePrompt {
		hookLog.Info("notification_skipped",
			slog.String("reason", "idle_prompt"),
			slog.String("session", p.SessionID),
		)
		return
	}

	// Startup noise: automatic discovery tools fire PreToolUse right after
	// the session record appears. Suppress so the status stays "idle" until
	// the user actually sends something.
	if event == EventPreToolUse && p.SessionID != "" && h.Guard.IsInitializing(p.SessionID) {
		hookLog.Info("pre_tool_use_skipped",
			slog.String("reason", "initialization_phase"),
			slog.String("session", p.SessionID),
		)
		return
	}

	status := MapEventToStatus(event)
	if status == "" {
		hookLog.Warn("unknown_event", slog.String("event", event))
		return
	}

	if p.SessionID == "" {
		// No session identity: per-session processing is impossible, but the
		// global slot still gets its signal.
		hookLog.Warn("missing_session_id", slog.String("event", event))
		h.writeLegacy(status, p)
		return
	}

	if event == EventSessionEnd {
		// Only an explicit end deletes the record; "completed" stays on disk
		// so the UI can show it until then.
		if err := h.Store.Delete(p.SessionID); err != nil {
			hookLog.Error("record_delete_failed",
				slog.String("session", p.SessionID),
				slog.String("error", err.Error()),
			)
		}
	} else {
		h.writeRecord(p.SessionID, status, p)
	}

	h.writeLegacy(status, p)
}

// writeRecord persists the session record, resolving the title at most once
// per session: the previously stored title wins, and the transcript is only
// scanned while the record still carries the placeholder.
func (h *Handler) writeRecord(sessionID, status string, p Payload) {
	title := h.Store.ReadExistingTitle(sessionID)
	if title == statusfile.DefaultTitle && p.TranscriptPath != "" {
		title = h.ResolveTitle(p.TranscriptPath)
	}

	rec := statusfile.SessionRecord{
		SessionID:      sessionID,
		Status:         status,
		Title:          title,
		CWD:            p.CWD,
		TranscriptPath: p.TranscriptPath,
		Timestamp:      statusfile.UTCTimestamp(time.Now()),
	}
	if err := h.Store.Write(rec); err != nil {
		hookLog.Error("record_write_failed",
			slog.String("session", sessionID),
			slog.String("error", err.Error()),
		)
		return
	}
	hookLog.Info("record_updated",
		slog.String("session", sessionID),
		slog.String("status", status),
	)
}

func (h *Handler) writeLegacy(status string, p Payload) {
	if err := h.Legacy.Write(status, p.ToolName, p.SessionID); err != nil {
		hookLog.Warn("legacy_write_failed", slog.String("error", err.Error()))
	}
}
