package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/clawed-code/clawmon/internal/config"
	"github.com/clawed-code/clawmon/internal/statusfile"
)

// Table column widths for sessions command output
const (
	tableColSession = 12
	tableColStatus  = 12
	tableColTitle   = 40
	tableColCWD     = 40
)

// staleRecordAge is how old a record must be before --prune removes it.
// A session silent for this long is presumed dead without a SessionEnd
// ever arriving.
const staleRecordAge = 24 * time.Hour

// handleSessions lists the per-session status records. Read-only over the
// same files the monitoring UI polls.
func handleSessions(cfg *config.Config, args []string) {
	jsonOutput := false
	prune := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "--prune":
			prune = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n", arg)
			fmt.Fprintln(os.Stderr, "Usage: clawmon sessions [--json] [--prune]")
			os.Exit(1)
		}
	}

	store := statusfile.NewStore(cfg.SessionsDir)

	if prune {
		removed := store.Prune(staleRecordAge)
		fmt.Fprintf(os.Stderr, "Pruned %d stale record(s)\n", removed)
	}

	records, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sessions: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if len(records) == 0 {
		fmt.Println("No active sessions.")
		return
	}

	fmt.Printf("%-*s %-*s %-*s %s\n",
		tableColSession, "SESSION",
		tableColStatus, "STATUS",
		tableColTitle, "TITLE",
		"CWD",
	)
	for _, rec := range records {
		fmt.Printf("%-*s %-*s %s %s\n",
			tableColSession, runewidth.Truncate(rec.SessionID, tableColSession, "…"),
			tableColStatus, rec.Status,
			runewidth.FillRight(runewidth.Truncate(rec.Title, tableColTitle, "…"), tableColTitle),
			runewidth.Truncate(rec.CWD, tableColCWD, "…"),
		)
	}
}
