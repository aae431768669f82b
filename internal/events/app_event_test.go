package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppEvent_WithDoesNotMutateOriginal(t *testing.T) {
	base := NewInfo("saved").With("designId", "a")
	next := base.With("count", "2")

	assert.Equal(t, map[string]string{"designId": "a"}, base.Metadata)
	assert.Equal(t, map[string]string{"designId": "a", "count": "2"}, next.Metadata)
	assert.NotEmpty(t, base.ID)
}

func TestSetCustomEmitter(t *testing.T) {
	var got []string
	SetCustomEmitter(func(ctx context.Context, name string, evt AppEvent) {
		got = append(got, name+":"+evt.Message)
	})
	t.Cleanup(func() { SetCustomEmitter(nil) })

	Emit(context.Background(), Autosave, NewSuccess("draft saved"))
	assert.Equal(t, []string{"events:autosave:draft saved"}, got)

	SetCustomEmitter(nil)
	Emit(context.Background(), Autosave, NewSuccess("ignored"))
	assert.Len(t, got, 1)
}
