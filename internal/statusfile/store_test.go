package statusfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sessions"))

	rec := SessionRecord{
		SessionID:      "abc-123",
		Status:         StatusIdle,
		Title:          "Fix login bug",
		CWD:            "/home/user/project",
		TranscriptPath: "/tmp/transcript.jsonl",
		Timestamp:      UTCTimestamp(time.Now()),
	}
	require.NoError(t, store.Write(rec))

	got, err := store.Read("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", got.Title)
	assert.Equal(t, "/home/user/project", got.CWD)
	assert.Equal(t, "/tmp/transcript.jsonl", got.TranscriptPath)
	assert.Equal(t, StatusIdle, got.Status)
	assert.NotEmpty(t, got.CreatedAt, "first write should stamp created_at")
}

func TestStore_WriteLeavesNoTempFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	store := NewStore(dir)

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusWorking, Title: DefaultTitle}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1.json", entries[0].Name())
}

func TestStore_CreatedAtPreservedAcrossWrites(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusIdle, Title: DefaultTitle}))
	first, err := store.Read("s1")
	require.NoError(t, err)

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusWorking, Title: DefaultTitle}))
	second, err := store.Read("s1")
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, StatusWorking, second.Status)
}

func TestStore_DeleteIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusIdle, Title: DefaultTitle}))
	require.NoError(t, store.Delete("s1"))
	assert.False(t, store.Exists("s1"))

	// Deleting again, and deleting a session that never existed, is fine.
	require.NoError(t, store.Delete("s1"))
	require.NoError(t, store.Delete("never-existed"))
}

func TestStore_ReadExistingTitle(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Equal(t, DefaultTitle, store.ReadExistingTitle("missing"))

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusIdle, Title: "Refactor parser"}))
	assert.Equal(t, "Refactor parser", store.ReadExistingTitle("s1"))
}

func TestStore_ReadExistingTitle_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.json"), []byte("{not json"), 0644))
	assert.Equal(t, DefaultTitle, store.ReadExistingTitle("s1"))
}

func TestStore_RecordAge(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok := store.RecordAge("missing")
	assert.False(t, ok)

	require.NoError(t, store.Write(SessionRecord{SessionID: "fresh", Status: StatusIdle, Title: DefaultTitle}))
	age, ok := store.RecordAge("fresh")
	require.True(t, ok)
	assert.Less(t, age, 5*time.Second)

	// Backdated created_at wins over file metadata.
	old := SessionRecord{
		SessionID: "old",
		Status:    StatusIdle,
		Title:     DefaultTitle,
		CreatedAt: UTCTimestamp(time.Now().Add(-time.Hour)),
	}
	require.NoError(t, store.Write(old))
	age, ok = store.RecordAge("old")
	require.True(t, ok)
	assert.Greater(t, age, 59*time.Minute)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Write(SessionRecord{SessionID: "s1", Status: StatusIdle, Title: DefaultTitle}))
	require.NoError(t, store.Write(SessionRecord{SessionID: "s2", Status: StatusWorking, Title: DefaultTitle}))
	// Corrupt files are skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("garbage"), 0644))
	// Non-JSON files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	records, err = store.List()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStore_ListMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	records, err := store.List()
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStore_Prune(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Write(SessionRecord{SessionID: "stale", Status: StatusCompleted, Title: DefaultTitle}))
	require.NoError(t, store.Write(SessionRecord{SessionID: "live", Status: StatusWorking, Title: DefaultTitle}))

	stalePath := filepath.Join(dir, "stale.json")
	oldTime := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stalePath, oldTime, oldTime))

	removed := store.Prune(24 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.False(t, store.Exists("stale"))
	assert.True(t, store.Exists("live"))
}

func TestUTCTimestampFormat(t *testing.T) {
	ts := UTCTimestamp(time.Date(2026, 8, 27, 10, 30, 0, 123456000, time.UTC))
	assert.Equal(t, "2026-08-27T10:30:00.123456Z", ts)

	parsed, err := ParseUTCTimestamp(ts)
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
}
