package main

import (
	"fmt"
	"os"

	"github.com/clawed-code/clawmon/internal/hook"
)

// handleHooks manages the clawmon entries in Claude Code's settings.json.
func handleHooks(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: clawmon hooks <install|uninstall|status>")
		os.Exit(1)
	}

	configDir := hook.ClaudeConfigDir()

	switch args[0] {
	case "install":
		installed, err := hook.InstallHooks(configDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error installing hooks: %v\n", err)
			os.Exit(1)
		}
		if installed {
			fmt.Println("Hooks installed.")
			fmt.Printf("Config: %s/settings.json\n", configDir)
		} else {
			fmt.Println("Hooks are already installed.")
		}
	case "uninstall":
		removed, err := hook.UninstallHooks(configDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error removing hooks: %v\n", err)
			os.Exit(1)
		}
		if removed {
			fmt.Println("Hooks removed.")
		} else {
			fmt.Println("No clawmon hooks found to remove.")
		}
	case "status":
		if hook.HooksInstalled(configDir) {
			fmt.Println("Status: INSTALLED")
			fmt.Printf("Config: %s/settings.json\n", configDir)
		} else {
			fmt.Println("Status: NOT INSTALLED")
			fmt.Println("Run 'clawmon hooks install' to install.")
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown hooks subcommand: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: clawmon hooks <install|uninstall|status>")
		os.Exit(1)
	}
}
