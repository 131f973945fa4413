//go:build !darwin

package statusfile

import (
	"os"
	"time"
)

// fileCreationTime falls back to the modification time. Linux ctime is
// metadata-change time, not creation, so mtime is the least-wrong stand-in.
// Every rewrite refreshes it, which makes records look younger than they
// are; callers that need real creation time should rely on the created_at
// field stored inside the record instead.
func fileCreationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
