package statusfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LegacyWriter overwrites the single-slot status file that predates
// per-session records. It is updated on every event so consumers unaware of
// the sessions directory still see a live global signal.
type LegacyWriter struct {
	path string
}

// NewLegacyWriter returns a writer for the legacy status file at path.
func NewLegacyWriter(path string) *LegacyWriter {
	return &LegacyWriter{path: path}
}

// Path returns the legacy status file path.
func (w *LegacyWriter) Path() string {
	return w.path
}

// Write overwrites the legacy slot atomically. toolName and sessionID may be
// empty; they are omitted from the document when they are.
func (w *LegacyWriter) Write(status, toolName, sessionID string) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}

	slot := LegacyStatus{
		Status:    status,
		Timestamp: UTCTimestamp(time.Now()),
		Tool:      toolName,
		Session:   sessionID,
	}

	data, err := json.MarshalIndent(slot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal legacy status: %w", err)
	}

	tmpPath := w.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write tmp legacy status: %w", err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename legacy status: %w", err)
	}
	return nil
}

// Read loads the legacy slot, for the status command and tests.
func (w *LegacyWriter) Read() (LegacyStatus, error) {
	var slot LegacyStatus
	data, err := os.ReadFile(w.path)
	if err != nil {
		return slot, err
	}
	if err := json.Unmarshal(data, &slot); err != nil {
		return slot, fmt.Errorf("parse legacy status: %w", err)
	}
	return slot, nil
}
