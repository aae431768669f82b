package models

// DesignIteration is one prompt/result pair produced by a successful
// generation. Timestamps are Unix milliseconds.
type DesignIteration struct {
	ID        string `json:"id"`
	Prompt    string `json:"prompt"`
	Image     string `json:"image"`
	Timestamp int64  `json:"timestamp"`
}

// SavedDesign is a project stored in the local portfolio.
type SavedDesign struct {
	ID             string            `json:"id"`
	Timestamp      int64             `json:"timestamp"`
	OriginalImage  string            `json:"originalImage"`
	GeneratedImage string            `json:"generatedImage"`
	Prompt         string            `json:"prompt"`
	Iterations     []DesignIteration `json:"iterations,omitempty"`
	UserID         string            `json:"userId,omitempty"`
}
