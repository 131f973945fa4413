package hook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/clawed-code/clawmon/internal/logging"
)

var installLog = logging.ForComponent(logging.CompInstall)

// hookCommandPrefix identifies clawmon entries in settings.json. The full
// command carries the event type as the positional argument, so the prefix
// is the marker, not the whole command.
const hookCommandPrefix = "clawmon hook"

// settingsHookEntry is a single hook command in Claude Code settings.
type settingsHookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Async   bool   `json:"async,omitempty"`
}

// settingsHookMatcher is a matcher block in the per-event hook array.
type settingsHookMatcher struct {
	Matcher string              `json:"matcher,omitempty"`
	Hooks   []settingsHookEntry `json:"hooks"`
}

// hookEvents are the lifecycle events the sink subscribes to. The event name
// doubles as the positional argument to `clawmon hook`.
var hookEvents = []string{
	EventPreToolUse,
	EventPostToolUse,
	EventNotification,
	EventStop,
	EventSessionStart,
	EventSessionEnd,
}

func hookEntryFor(event string) settingsHookEntry {
	return settingsHookEntry{
		Type:    "command",
		Command: hookCommandPrefix + " " + event,
		Async:   true,
	}
}

// InstallHooks injects clawmon hook entries into Claude Code's settings.json
// under configDir. Read-preserve-modify-write: existing settings and foreign
// hooks are kept intact. Returns true if anything was newly installed.
func InstallHooks(configDir string) (bool, error) {
	settingsPath := filepath.Join(configDir, "settings.json")

	var rawSettings map[string]json.RawMessage
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("read settings.json: %w", err)
		}
		rawSettings = make(map[string]json.RawMessage)
	} else {
		if err := json.Unmarshal(data, &rawSettings); err != nil {
			return false, fmt.Errorf("parse settings.json: %w", err)
		}
	}

	var existingHooks map[string]json.RawMessage
	if raw, ok := rawSettings["hooks"]; ok {
		if err := json.Unmarshal(raw, &existingHooks); err != nil {
			existingHooks = make(map[string]json.RawMessage)
		}
	} else {
		existingHooks = make(map[string]json.RawMessage)
	}

	if hooksInstalled(existingHooks) {
		return false, nil
	}

	for _, event := range hookEvents {
		existingHooks[event] = mergeHookEvent(existingHooks[event], event)
	}

	hooksRaw, err := json.Marshal(existingHooks)
	if err != nil {
		return false, fmt.Errorf("marshal hooks: %w", err)
	}
	rawSettings["hooks"] = hooksRaw

	if err := writeSettings(configDir, settingsPath, rawSettings); err != nil {
		return false, err
	}

	installLog.Info("hooks_installed", slog.String("config_dir", configDir))
	return true, nil
}

// UninstallHooks removes clawmon entries from settings.json, leaving foreign
// hooks untouched. Returns true if anything was removed.
func UninstallHooks(configDir string) (bool, error) {
	settingsPath := filepath.Join(configDir, "settings.json")

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read settings.json: %w", err)
	}

	var rawSettings map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return false, fmt.Errorf("parse settings.json: %w", err)
	}

	hooksRaw, ok := rawSettings["hooks"]
	if !ok {
		return false, nil
	}

	var existingHooks map[string]json.RawMessage
	if err := json.Unmarshal(hooksRaw, &existingHooks); err != nil {
		return false, nil
	}

	removed := false
	for _, event := range hookEvents {
		raw, ok := existingHooks[event]
		if !ok {
			continue
		}
		cleaned, didRemove := removeClawmonFromEvent(raw)
		if didRemove {
			removed = true
			if cleaned == nil {
				delete(existingHooks, event)
			} else {
				existingHooks[event] = cleaned
			}
		}
	}

	if !removed {
		return false, nil
	}

	if len(existingHooks) == 0 {
		delete(rawSettings, "hooks")
	} else {
		hooksData, _ := json.Marshal(existingHooks)
		rawSettings["hooks"] = hooksData
	}

	if err := writeSettings(configDir, settingsPath, rawSettings); err != nil {
		return false, err
	}

	installLog.Info("hooks_removed", slog.String("config_dir", configDir))
	return true, nil
}

// HooksInstalled reports whether all clawmon hook entries are present.
func HooksInstalled(configDir string) bool {
	data, err := os.ReadFile(filepath.Join(configDir, "settings.json"))
	if err != nil {
		return false
	}

	var rawSettings map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return false
	}

	hooksRaw, ok := rawSettings["hooks"]
	if !ok {
		return false
	}

	var existingHooks map[string]json.RawMessage
	if err := json.Unmarshal(hooksRaw, &existingHooks); err != nil {
		return false
	}

	return hooksInstalled(existingHooks)
}

func writeSettings(configDir, settingsPath string, rawSettings map[string]json.RawMessage) error {
	finalData, err := json.MarshalIndent(rawSettings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmpPath := settingsPath + ".tmp"
	if err := os.WriteFile(tmpPath, finalData, 0644); err != nil {
		return fmt.Errorf("write settings.json.tmp: %w", err)
	}
	if err := os.Rename(tmpPath, settingsPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename settings.json: %w", err)
	}
	return nil
}

func hooksInstalled(hooks map[string]json.RawMessage) bool {
	for _, event := range hookEvents {
		raw, ok := hooks[event]
		if !ok {
			return false
		}
		if !eventHasClawmonHook(raw) {
			return false
		}
	}
	return true
}

func eventHasClawmonHook(raw json.RawMessage) bool {
	var matchers []settingsHookMatcher
	if err := json.Unmarshal(raw, &matchers); err != nil {
		return false
	}
	for _, m := range matchers {
		for _, h := range m.Hooks {
			if strings.Contains(h.Command, hookCommandPrefix) {
				return true
			}
		}
	}
	return false
}

// mergeHookEvent adds clawmon's hook for event to an existing matcher array,
// preserving all foreign matchers and hooks.
func mergeHookEvent(existing json.RawMessage, event string) json.RawMessage {
	var matchers []settingsHookMatcher
	if existing != nil {
		if err := json.Unmarshal(existing, &matchers); err != nil {
			matchers = nil
		}
	}

	for i, m := range matchers {
		if m.Matcher != "" {
			continue
		}
		for _, h := range m.Hooks {
			if strings.Contains(h.Command, hookCommandPrefix) {
				result, _ := json.Marshal(matchers)
				return result
			}
		}
		matchers[i].Hooks = append(matchers[i].Hooks, hookEntryFor(event))
		result, _ := json.Marshal(matchers)
		return result
	}

	matchers = append(matchers, settingsHookMatcher{
		Hooks: []settingsHookEntry{hookEntryFor(event)},
	})
	result, _ := json.Marshal(matchers)
	return result
}

// removeClawmonFromEvent strips clawmon entries from one event's matcher
// array. Returns nil JSON when nothing is left.
func removeClawmonFromEvent(raw json.RawMessage) (json.RawMessage, bool) {
	var matchers []settingsHookMatcher
	if err := json.Unmarshal(raw, &matchers); err != nil {
		return raw, false
	}

	removed := false
	var cleaned []settingsHookMatcher
	for _, m := range matchers {
		var hooks []settingsHookEntry
		for _, h := range m.Hooks {
			if strings.Contains(h.Command, hookCommandPrefix) {
				removed = true
				continue
			}
			hooks = append(hooks, h)
		}
		if len(hooks) > 0 {
			m.Hooks = hooks
			cleaned = append(cleaned, m)
		}
	}

	if !removed {
		return raw, false
	}
	if len(cleaned) == 0 {
		return nil, true
	}
	result, _ := json.Marshal(cleaned)
	return result, true
}

// ClaudeConfigDir resolves the Claude Code configuration directory,
// honoring CLAUDE_CONFIG_DIR.
func ClaudeConfigDir() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".claude")
	}
	return filepath.Join(home, ".claude")
}
