package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"landscapevision/internal/models"
)

const suggestionCount = 3

// DefaultSuggestions is served whenever the model cannot produce usable
// suggestions.
func DefaultSuggestions() []models.LandscapingSuggestion {
	return []models.LandscapingSuggestion{
		{Category: "Plants", Item: "Lavender Hidcote", Description: "Adds year-round structure and summer fragrance."},
		{Category: "Lighting", Item: "Solar Uplights", Description: "Highlights architectural trees like Acers at night."},
		{Category: "Hardscape", Item: "Granite Sets", Description: "Perfect for defining clean paths and borders."},
	}
}

type SuggesterOptions struct {
	Provider string
	Model    string
}

// Suggester asks a chat model for planting and hardscape ideas that go with
// the change the user just generated.
type Suggester struct {
	chat model.BaseChatModel
}

func NewSuggester(chat model.BaseChatModel) *Suggester {
	return &Suggester{chat: chat}
}

// NewProviderSuggester instantiates the chat model for the given provider.
func NewProviderSuggester(ctx context.Context, apiKey string, opts SuggesterOptions) (*Suggester, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key for %s is not configured", opts.Provider)
	}

	var (
		chat model.BaseChatModel
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "gemini":
		var gc *genai.Client
		gc, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		chat, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: gc,
			Model:  opts.Model,
		})
	case "openai":
		chat, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey: apiKey,
			Model:  opts.Model,
		})
	case "anthropic":
		chat, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    apiKey,
			Model:     opts.Model,
			MaxTokens: 1024,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s chat model: %w", opts.Provider, err)
	}
	return NewSuggester(chat), nil
}

// Suggest returns up to three suggestions for prompt.
func (s *Suggester) Suggest(ctx context.Context, prompt string) ([]models.LandscapingSuggestion, error) {
	if s == nil || s.chat == nil {
		return nil, fmt.Errorf("suggester is not configured")
	}
	msg, err := s.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(loadPrompt("suggestions_system.txt")),
		schema.UserMessage("Requested change: " + prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}
	if msg == nil {
		return nil, fmt.Errorf("empty suggestion response")
	}
	return ParseSuggestions(msg.Content)
}

// ParseSuggestions extracts the JSON array of suggestions from a model
// answer, tolerating code fences around it.
func ParseSuggestions(content string) ([]models.LandscapingSuggestion, error) {
	raw := strings.TrimSpace(content)
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in suggestion response")
	}

	var parsed []models.LandscapingSuggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	out := make([]models.LandscapingSuggestion, 0, suggestionCount)
	for _, sg := range parsed {
		sg.Item = strings.TrimSpace(sg.Item)
		if sg.Item == "" {
			continue
		}
		sg.Category = strings.TrimSpace(sg.Category)
		sg.Description = strings.TrimSpace(sg.Description)
		out = append(out, sg)
		if len(out) == suggestionCount {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("suggestion response contained no items")
	}
	return out, nil
}
