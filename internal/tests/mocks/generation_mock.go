package mocks

import (
	"context"
	"sync"

	"landscapevision/internal/llm/client"
	"landscapevision/internal/models"
)

// ImageEditorMock records every call and returns Result unless EditFunc is
// set.
type ImageEditorMock struct {
	EditFunc func(ctx context.Context, src client.ImageSource, instruction string) (string, error)
	Result   string

	mu    sync.Mutex
	Calls []EditCall
}

type EditCall struct {
	Source      client.ImageSource
	Instruction string
}

func (m *ImageEditorMock) Edit(ctx context.Context, src client.ImageSource, instruction string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, EditCall{Source: src, Instruction: instruction})
	m.mu.Unlock()
	if m.EditFunc != nil {
		return m.EditFunc(ctx, src, instruction)
	}
	return m.Result, nil
}

func (m *ImageEditorMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type SuggestionProviderMock struct {
	SuggestFunc func(ctx context.Context, prompt string) ([]models.LandscapingSuggestion, error)
}

func (m *SuggestionProviderMock) Suggest(ctx context.Context, prompt string) ([]models.LandscapingSuggestion, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, prompt)
	}
	return []models.LandscapingSuggestion{}, nil
}
