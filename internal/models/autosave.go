package models

type AppState string

const (
	AppStateIdle    AppState = "IDLE"
	AppStateLoading AppState = "LOADING"
	AppStateSuccess AppState = "SUCCESS"
	AppStateError   AppState = "ERROR"
)

// AutoSaveState is the single draft slot: a full snapshot of an unsaved
// editing session.
type AutoSaveState struct {
	Timestamp        int64             `json:"timestamp"`
	Prompt           string            `json:"prompt"`
	ImagePreview     *string           `json:"imagePreview"`
	GeneratedImage   *string           `json:"generatedImage"`
	PastIterations   []DesignIteration `json:"pastIterations"`
	OriginalImageRef *string           `json:"originalImageRef"`
	AppState         AppState          `json:"appState"`
	User             *UserLead         `json:"user,omitempty"`
}
