package models

type PendingAction string

const (
	PendingNone     PendingAction = ""
	PendingSave     PendingAction = "save"
	PendingDownload PendingAction = "download"
)

// SessionView is the read-only picture of the editing session handed to
// the frontend after every operation.
type SessionView struct {
	AppState         AppState                `json:"appState"`
	CurrentDesignID  string                  `json:"currentDesignId"`
	FileName         string                  `json:"fileName"`
	ImagePreview     string                  `json:"imagePreview"`
	OriginalImageRef string                  `json:"originalImageRef"`
	GeneratedImage   string                  `json:"generatedImage"`
	PastIterations   []DesignIteration       `json:"pastIterations"`
	Prompt           string                  `json:"prompt"`
	PromptLength     int                     `json:"promptLength"`
	MaxPromptLength  int                     `json:"maxPromptLength"`
	CanUndo          bool                    `json:"canUndo"`
	CanRedo          bool                    `json:"canRedo"`
	ErrorMessage     string                  `json:"errorMessage"`
	ActivePresetID   string                  `json:"activePresetId"`
	Suggestions      []LandscapingSuggestion `json:"suggestions"`
	User             *UserLead               `json:"user"`
	PendingAction    PendingAction           `json:"pendingAction"`
	ShowSignup       bool                    `json:"showSignup"`
	ShowSaveDialog   bool                    `json:"showSaveDialog"`
	IsSaving         bool                    `json:"isSaving"`
	LastAutoSave     int64                   `json:"lastAutoSave"`
	SavedDesigns     []SavedDesign           `json:"savedDesigns"`
}

// DownloadResult is returned when a download is requested. SignupRequired
// is set instead of the payload while no lead has been captured.
type DownloadResult struct {
	SignupRequired bool   `json:"signupRequired"`
	FileName       string `json:"fileName,omitempty"`
	DataURI        string `json:"dataUri,omitempty"`
	Data           []byte `json:"-"`
}
