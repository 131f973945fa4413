package main

import (
	"fmt"
	"os"

	"github.com/clawed-code/clawmon/internal/config"
	"github.com/clawed-code/clawmon/internal/logging"
)

const Version = "0.3.1"

func main() {
	// Diagnostics always go to stderr so callers reading stdout (and the
	// runtime's hook plumbing) see no noise. File mirroring is wired after
	// config is read.
	logging.Init(logging.Config{Stderr: os.Stderr})

	cfg := config.Load()
	if cfg.Logs.FileEnabled {
		logging.Init(logging.Config{
			Stderr:     os.Stderr,
			Level:      cfg.Logs.Level,
			LogDir:     config.BaseDir(),
			MaxSizeMB:  cfg.Logs.MaxSizeMB,
			MaxBackups: cfg.Logs.MaxBackups,
		})
	}
	defer logging.Shutdown()

	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		return
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Printf("clawmon v%s\n", Version)
	case "help", "--help", "-h":
		printHelp()
	case "hook":
		handleHook(cfg, args[1:])
	case "sessions", "ls":
		handleSessions(cfg, args[1:])
	case "watch":
		handleWatch(cfg)
	case "hooks":
		handleHooks(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`clawmon - per-session status sink for Clawed Code hooks

Usage:
  clawmon hook <event-type>        Process a lifecycle event (payload on stdin)
  clawmon sessions [--json|--prune] List active session status records
  clawmon watch                    Follow status changes live
  clawmon hooks <install|uninstall|status>
                                   Manage Claude Code hook entries
  clawmon version                  Print version

Event types:
  PreToolUse PostToolUse Notification Stop SessionStart SessionEnd
`)
}
