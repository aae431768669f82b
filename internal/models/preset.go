package models

type LandscapePreset struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Image       string `json:"image"`
	Tag         string `json:"tag,omitempty"`
}

type LandscapingSuggestion struct {
	Category    string `json:"category"`
	Item        string `json:"item"`
	Description string `json:"description"`
}
