package hook

import (
	"testing"

	"github.com/clawed-code/clawmon/internal/statusfile"
)

func TestMapEventToStatus(t *testing.T) {
	tests := []struct {
		event  string
		expect string
	}{
		{"PreToolUse", statusfile.StatusWorking},
		{"PostToolUse", statusfile.StatusWorking},
		{"Notification", statusfile.StatusNeedsInput},
		{"Stop", statusfile.StatusCompleted},
		{"SessionStart", statusfile.StatusIdle},
		{"SessionEnd", statusfile.StatusIdle},
		{"UnknownEvent", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			got := MapEventToStatus(tt.event)
			if got != tt.expect {
				t.Errorf("MapEventToStatus(%q) = %q, want %q", tt.event, got, tt.expect)
			}
		})
	}
}
