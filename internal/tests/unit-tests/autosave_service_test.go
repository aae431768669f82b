package unit_tests

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landscapevision/internal/events"
	"landscapevision/internal/services"
)

func TestAutosave_SaveNow_SkipsEmptySession(t *testing.T) {
	f := newSessionFixture(t)
	autosave := services.NewAutosaveService(f.session, f.store, time.Minute)

	assert.False(t, autosave.SaveNow(context.Background()))
	assert.False(t, f.blobs.Has(services.DraftKey))
}

func TestAutosave_SaveNow_WritesDraftAndEmits(t *testing.T) {
	var (
		mu    sync.Mutex
		names []string
	)
	events.SetCustomEmitter(func(ctx context.Context, name string, evt events.AppEvent) {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, name)
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })

	f := newSessionFixture(t)
	f.session.SetPrompt("Add a pergola")
	autosave := services.NewAutosaveService(f.session, f.store, time.Minute)

	require.True(t, autosave.SaveNow(context.Background()))
	draft := f.store.GetDraft(context.Background())
	require.NotNil(t, draft)
	assert.Equal(t, "Add a pergola", draft.Prompt)
	assert.Nil(t, draft.ImagePreview)
	assert.Equal(t, fixedNow.UnixMilli(), f.session.State().LastAutoSave)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{events.Autosave}, names)
}

func TestAutosave_LoopSavesOnTick(t *testing.T) {
	f := newSessionFixture(t)
	f.session.SetPrompt("Add a pergola")
	autosave := services.NewAutosaveService(f.session, f.store, 10*time.Millisecond)

	require.True(t, autosave.Start(context.Background()))
	assert.False(t, autosave.Start(context.Background()))
	assert.True(t, autosave.Running())

	assert.Eventually(t, func() bool {
		return f.blobs.Has(services.DraftKey)
	}, time.Second, 5*time.Millisecond)

	autosave.Stop()
	assert.False(t, autosave.Running())
	autosave.Stop()
}
