package services

import (
	"context"
	"log"
	"sync"
	"time"

	"landscapevision/internal/events"
	"landscapevision/internal/models"
)

// DraftSource is the session state the autosave loop snapshots.
type DraftSource interface {
	draftSnapshot() (models.AutoSaveState, bool)
	markAutoSaved(ts int64)
}

// AutosaveService periodically writes the session into the draft slot.
type AutosaveService struct {
	source   DraftSource
	store    DesignStoreService
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewAutosaveService(source DraftSource, store DesignStoreService, interval time.Duration) *AutosaveService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &AutosaveService{source: source, store: store, interval: interval}
}

// Start launches the loop. It returns false if the loop is already running.
func (a *AutosaveService) Start(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	a.running = true

	go a.loop(loopCtx, a.done)
	return true
}

func (a *AutosaveService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.SaveNow(ctx)
		}
	}
}

// SaveNow writes one snapshot. It reports whether anything was saved.
func (a *AutosaveService) SaveNow(ctx context.Context) bool {
	state, ok := a.source.draftSnapshot()
	if !ok {
		return false
	}
	a.store.SaveDraft(ctx, state)
	a.source.markAutoSaved(state.Timestamp)
	events.Emit(ctx, events.Autosave, events.NewInfo("draft saved").
		With("timestamp", time.UnixMilli(state.Timestamp).UTC().Format(time.RFC3339)))
	return true
}

// Stop cancels the loop and waits for it to exit.
func (a *AutosaveService) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.running = false
	a.cancel = nil
	a.done = nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Printf("Autosave stopped")
}

func (a *AutosaveService) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}
