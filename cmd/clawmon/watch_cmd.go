package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clawed-code/clawmon/internal/config"
	"github.com/clawed-code/clawmon/internal/statusfile"
	"github.com/clawed-code/clawmon/internal/watch"
)

// handleWatch follows the sessions directory and prints status transitions
// as they land. Ctrl+C stops it.
func handleWatch(cfg *config.Config) {
	store := statusfile.NewStore(cfg.SessionsDir)

	watcher, err := watch.NewWatcher(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go watcher.Start()
	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", store.Dir())

	for {
		select {
		case <-sigCh:
			watcher.Stop()
			return
		case ev, ok := <-watcher.Events():
			if !ok {
				return
			}
			now := time.Now().Format("15:04:05")
			if ev.Removed {
				fmt.Printf("%s  %-12s ended\n", now, ev.SessionID)
				continue
			}
			fmt.Printf("%s  %-12s %-12s %s\n", now, ev.SessionID, ev.Record.Status, ev.Record.Title)
		}
	}
}
