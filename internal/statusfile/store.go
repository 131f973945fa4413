package statusfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/clawed-code/clawmon/internal/logging"
)

var storeLog = logging.ForComponent(logging.CompStore)

// Store persists per-session status records, one JSON file per session id.
// File presence is the source of truth for "session is active and tracked".
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first write, not here, so read-only consumers can construct a Store for a
// directory that does not exist yet.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the sessions directory this store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record file path for a session id.
func (s *Store) Path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// Write persists rec atomically via temp file + rename, creating the sessions
// directory if needed. A reader polling the file never observes a partial
// document. The record's CreatedAt is preserved from any existing record so
// the initialization window survives metadata-mangling filesystems.
func (s *Store) Write(rec SessionRecord) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	if rec.CreatedAt == "" {
		if existing, err := s.Read(rec.SessionID); err == nil && existing.CreatedAt != "" {
			rec.CreatedAt = existing.CreatedAt
		} else {
			rec.CreatedAt = UTCTimestamp(time.Now())
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	filePath := s.Path(rec.SessionID)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write tmp record: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename record: %w", err)
	}

	storeLog.Debug("record_written",
		slog.String("session", rec.SessionID),
		slog.String("status", rec.Status),
	)
	return nil
}

// Read loads and parses the record for a session id.
func (s *Store) Read(sessionID string) (SessionRecord, error) {
	var rec SessionRecord
	data, err := os.ReadFile(s.Path(sessionID))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("parse record: %w", err)
	}
	return rec, nil
}

// Delete removes the record for a session id. Deleting a session that has no
// record is a no-op, so termination events are idempotent.
func (s *Store) Delete(sessionID string) error {
	err := os.Remove(s.Path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete record: %w", err)
	}
	if err == nil {
		storeLog.Debug("record_deleted", slog.String("session", sessionID))
	}
	return nil
}

// Exists reports whether a record file is present for the session id.
func (s *Store) Exists(sessionID string) bool {
	_, err := os.Stat(s.Path(sessionID))
	return err == nil
}

// ReadExistingTitle returns the previously stored title for a session, or
// DefaultTitle when there is no record or it cannot be parsed. A corrupt
// record is treated as "no title", not an error: the next write will repair
// the file.
func (s *Store) ReadExistingTitle(sessionID string) string {
	rec, err := s.Read(sessionID)
	if err != nil || rec.Title == "" {
		return DefaultTitle
	}
	return rec.Title
}

// RecordAge returns the age of the session record measured from its creation,
// or false when no record exists. The created_at field inside the record is
// authoritative; records written by older versions that lack it fall back to
// the file creation time (birthtime where the platform exposes one, mtime
// elsewhere — mtime overstates freshness on every rewrite, which only widens
// the initialization window, never shortens it incorrectly).
func (s *Store) RecordAge(sessionID string) (time.Duration, bool) {
	if rec, err := s.Read(sessionID); err == nil && rec.CreatedAt != "" {
		if created, err := ParseUTCTimestamp(rec.CreatedAt); err == nil {
			return time.Since(created), true
		}
	}

	info, err := os.Stat(s.Path(sessionID))
	if err != nil {
		return 0, false
	}
	return time.Since(fileCreationTime(s.Path(sessionID), info)), true
}

// List returns all parseable records in the sessions directory. Unparseable
// files are skipped with a diagnostic; a missing directory yields an empty
// list.
func (s *Store) List() ([]SessionRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	var records []SessionRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec SessionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			storeLog.Warn("record_skipped",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Prune removes record files older than maxAge (by modification time) and
// returns how many were removed. Sessions that old are presumed dead without
// a SessionEnd ever arriving (crashed runtime, pulled plug).
func (s *Store) Prune(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(s.dir, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}
