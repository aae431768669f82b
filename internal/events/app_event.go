package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	Autosave   = "events:autosave"
	Generation = "events:generation"
	Portfolio  = "events:portfolio"
)

// AppEvent is the payload pushed to the frontend.
type AppEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func CreateAppEvent(eventType EventType, message string) AppEvent {
	return AppEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func NewInfo(message string) AppEvent {
	return CreateAppEvent(EventInfo, message)
}

func NewWarn(message string) AppEvent {
	return CreateAppEvent(EventWarn, message)
}

func NewError(message string) AppEvent {
	return CreateAppEvent(EventError, message)
}

func NewSuccess(message string) AppEvent {
	return CreateAppEvent(EventSuccess, message)
}

// With returns a copy of e carrying an extra metadata entry.
func (e AppEvent) With(key, value string) AppEvent {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	e.Metadata = md
	return e
}
