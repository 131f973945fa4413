package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/clawed-code/clawmon/internal/config"
	"github.com/clawed-code/clawmon/internal/hook"
	"github.com/clawed-code/clawmon/internal/statusfile"
)

// handleHook processes one lifecycle event. This is the path the agent
// runtime calls on every hook firing, so it must never exit nonzero except
// for the bare usage error: a failed status update is cheaper than breaking
// the runtime's hook point.
func handleHook(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: clawmon hook <event-type>")
		os.Exit(1)
	}
	event := args[0]

	// The payload arrives on stdin only when the runtime pipes it in; an
	// interactive terminal means a human poking at the CLI, so don't block
	// waiting for input that will never come.
	var payload hook.Payload
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		payload = hook.DecodePayload(os.Stdin)
	}

	store := statusfile.NewStore(cfg.SessionsDir)
	legacy := statusfile.NewLegacyWriter(cfg.LegacyStatusFile)
	guard := hook.NewGuard(store, time.Duration(cfg.InitPhaseSeconds)*time.Second)

	hook.NewHandler(store, legacy, guard).Process(event, payload)
}
