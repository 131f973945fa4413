package hook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clawed-code/clawmon/internal/statusfile"
)

func TestGuard_NoRecord(t *testing.T) {
	store := statusfile.NewStore(t.TempDir())
	guard := NewGuard(store, 15*time.Second)

	assert.False(t, guard.IsInitializing("never-seen"))
}

func TestGuard_FreshRecord(t *testing.T) {
	store := statusfile.NewStore(t.TempDir())
	guard := NewGuard(store, 15*time.Second)

	require.NoError(t, store.Write(statusfile.SessionRecord{
		SessionID: "s1",
		Status:    statusfile.StatusIdle,
		Title:     statusfile.DefaultTitle,
	}))

	assert.True(t, guard.IsInitializing("s1"))
}

func TestGuard_AgedRecord(t *testing.T) {
	store := statusfile.NewStore(t.TempDir())
	guard := NewGuard(store, 15*time.Second)

	require.NoError(t, store.Write(statusfile.SessionRecord{
		SessionID: "s1",
		Status:    statusfile.StatusIdle,
		Title:     statusfile.DefaultTitle,
		CreatedAt: statusfile.UTCTimestamp(time.Now().Add(-16 * time.Second)),
	}))

	assert.False(t, guard.IsInitializing("s1"))
}

func TestGuard_ThresholdBoundary(t *testing.T) {
	store := statusfile.NewStore(t.TempDir())
	guard := NewGuard(store, 15*time.Second)

	require.NoError(t, store.Write(statusfile.SessionRecord{
		SessionID: "s1",
		Status:    statusfile.StatusIdle,
		Title:     statusfile.DefaultTitle,
		CreatedAt: statusfile.UTCTimestamp(time.Now().Add(-14 * time.Second)),
	}))

	assert.True(t, guard.IsInitializing("s1"))
}
