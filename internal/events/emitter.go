package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit publishes an event. It is a no-op until EnableRuntimeEmitter or
// SetCustomEmitter is called, so services stay usable without a Wails
// runtime (tests, CLI).
var Emit = func(ctx context.Context, name string, evt AppEvent) {}

// EnableRuntimeEmitter routes events to the Wails frontend and the Wails
// logger. ctx must be the context handed to OnStartup.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt AppEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt AppEvent)) {
	if f == nil {
		Emit = func(context.Context, string, AppEvent) {}
		return
	}
	Emit = f
}
