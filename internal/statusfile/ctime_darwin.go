//go:build darwin

package statusfile

import (
	"os"
	"syscall"
	"time"
)

// fileCreationTime returns the file's true creation time. macOS keeps a
// birthtime in stat; Go surfaces it through Stat_t.Birthtimespec.
func fileCreationTime(_ string, info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
