package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/clawed-code/clawmon/internal/logging"
)

var configLog = logging.ForComponent(logging.CompConfig)

// ConfigFileName is the TOML config file for user preferences.
const ConfigFileName = "config.toml"

// DefaultInitPhaseSeconds is how long after a session record first appears
// that automatic startup tool calls are still absorbed.
const DefaultInitPhaseSeconds = 15

// Config represents user-facing configuration in TOML format.
// All fields are optional; zero values fall back to defaults.
type Config struct {
	// SessionsDir overrides where per-session status records are written.
	// Default: <base>/sessions
	SessionsDir string `toml:"sessions_dir"`

	// LegacyStatusFile overrides the single-slot legacy status path.
	// Default: <base>/status.json
	LegacyStatusFile string `toml:"legacy_status_file"`

	// InitPhaseSeconds is the startup window during which PreToolUse events
	// are ignored so the displayed status stays at "idle". Default: 15.
	InitPhaseSeconds int `toml:"init_phase_seconds"`

	// Logs defines diagnostic log settings.
	Logs LogSettings `toml:"logs"`
}

// LogSettings defines diagnostic log file settings.
type LogSettings struct {
	// FileEnabled mirrors diagnostics to a rotating log file under the base
	// directory in addition to stderr. Default: false.
	FileEnabled bool `toml:"file_enabled"`

	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// MaxSizeMB is the rotation threshold in MB.
	MaxSizeMB int `toml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `toml:"max_backups"`
}

var (
	loadOnce  sync.Once
	loaded    *Config
	loadedErr error
)

// BaseDir returns the clawmon data directory (~/.clawed-code by default).
// CLAWMON_DIR overrides it, which also serves as the test seam.
func BaseDir() string {
	if dir := os.Getenv("CLAWMON_DIR"); dir != "" {
		return expandTilde(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".clawed-code")
	}
	return filepath.Join(home, ".clawed-code")
}

// Load reads config.toml from the base directory, caching the result for the
// lifetime of the process. A missing file yields pure defaults; a malformed
// file is logged and also yields defaults, since a hook invocation must not
// fail on a bad config.
func Load() *Config {
	loadOnce.Do(func() {
		loaded, loadedErr = parseFile(filepath.Join(BaseDir(), ConfigFileName))
		if loadedErr != nil {
			configLog.Warn("config_parse_failed", slog.String("error", loadedErr.Error()))
		}
	})
	return loaded
}

func parseFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		// Missing config is the common case, not an error.
		cfg.applyDefaults()
		return cfg, nil
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		defaults := &Config{}
		defaults.applyDefaults()
		return defaults, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	base := BaseDir()
	if c.SessionsDir == "" {
		c.SessionsDir = filepath.Join(base, "sessions")
	} else {
		c.SessionsDir = expandTilde(c.SessionsDir)
	}
	if c.LegacyStatusFile == "" {
		c.LegacyStatusFile = filepath.Join(base, "status.json")
	} else {
		c.LegacyStatusFile = expandTilde(c.LegacyStatusFile)
	}
	if c.InitPhaseSeconds <= 0 {
		c.InitPhaseSeconds = DefaultInitPhaseSeconds
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

// expandTilde expands a leading ~/ to the user's home directory.
func expandTilde(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Clean(filepath.Join(home, path[2:]))
		}
	}
	return path
}
