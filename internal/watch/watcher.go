package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clawed-code/clawmon/internal/logging"
	"github.com/clawed-code/clawmon/internal/statusfile"
)

var watchLog = logging.ForComponent(logging.CompWatch)

// Event is one observed change to the sessions directory.
type Event struct {
	SessionID string
	Record    statusfile.SessionRecord // zero value when Removed
	Removed   bool
}

// Watcher follows the sessions directory with fsnotify and reports record
// updates and removals. Rapid rewrites of the same record are debounced so a
// burst of tool events collapses into one notification.
type Watcher struct {
	store   *statusfile.Store
	watcher *fsnotify.Watcher

	mu   sync.RWMutex
	last map[string]string // session_id -> last seen status

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
}

// NewWatcher creates a watcher over the store's sessions directory, creating
// the directory if it does not exist yet.
func NewWatcher(store *statusfile.Store) (*Watcher, error) {
	if err := os.MkdirAll(store.Dir(), 0755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		store:   store,
		watcher: fsw,
		last:    make(map[string]string),
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 64),
	}, nil
}

// Events returns the channel of observed changes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. Blocks until Stop is called; run it in a goroutine.
func (w *Watcher) Start() {
	defer close(w.events)

	if err := w.watcher.Add(w.store.Dir()); err != nil {
		watchLog.Warn("watch_add_failed",
			slog.String("dir", w.store.Dir()),
			slog.String("error", err.Error()),
		)
		return
	}

	w.loadExisting()

	var debounceTimer *time.Timer
	pending := make(map[string]fsnotify.Op)
	var pendingMu sync.Mutex

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			pendingMu.Lock()
			pending[event.Name] |= event.Op
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				pendingMu.Lock()
				batch := pending
				pending = make(map[string]fsnotify.Op)
				pendingMu.Unlock()

				for name, op := range batch {
					w.processFile(name, op)
				}
			})
			pendingMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch_error", slog.String("error", err.Error()))
		}
	}
}

// Stop ends the watch and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
}

// loadExisting emits the records already on disk so consumers start with the
// full picture rather than only deltas.
func (w *Watcher) loadExisting() {
	records, err := w.store.List()
	if err != nil {
		watchLog.Warn("load_existing_failed", slog.String("error", err.Error()))
		return
	}
	for _, rec := range records {
		w.mu.Lock()
		w.last[rec.SessionID] = rec.Status
		w.mu.Unlock()
		w.emit(Event{SessionID: rec.SessionID, Record: rec})
	}
}

func (w *Watcher) processFile(name string, op fsnotify.Op) {
	sessionID := strings.TrimSuffix(filepath.Base(name), ".json")

	if op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if _, err := os.Stat(name); err != nil {
			w.mu.Lock()
			delete(w.last, sessionID)
			w.mu.Unlock()
			w.emit(Event{SessionID: sessionID, Removed: true})
			return
		}
		// File still exists after a rename event: that was the atomic
		// replace landing, so read it as an update.
	}

	rec, err := w.store.Read(sessionID)
	if err != nil {
		// Mid-rename or corrupt; the next write will produce another event.
		return
	}

	w.mu.RLock()
	prev := w.last[sessionID]
	w.mu.RUnlock()
	if prev == rec.Status {
		return
	}

	w.mu.Lock()
	w.last[sessionID] = rec.Status
	w.mu.Unlock()
	w.emit(Event{SessionID: sessionID, Record: rec})
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		watchLog.Warn("event_dropped", slog.String("session", ev.SessionID))
	}
}
