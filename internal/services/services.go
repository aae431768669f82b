package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"landscapevision/internal/config"
	"landscapevision/internal/llm/client"
)

// Services is the full container bound to the desktop app and used by the
// CLI.
type Services struct {
	*DbServices
	Presets  PresetService
	Keys     *KeyringService
	Session  *SessionService
	Autosave *AutosaveService
}

// NewServices wires every service over db. keys may wrap a nil keyring, in
// which case API keys only come from the environment.
func NewServices(db *gorm.DB, keys *KeyringService, cfg config.Config) (*Services, error) {
	dbServices := NewDbServices(db)
	presets := NewPresetService()
	if err := presets.Startup(); err != nil {
		return nil, err
	}

	session := NewSessionService(SessionDeps{
		Store:      dbServices.Designs,
		Leads:      dbServices.Leads,
		Presets:    presets,
		Editor:     GeminiEditorFactory(keys, cfg.ImageModel),
		Suggesters: ProviderSuggesterFactory(keys, cfg.SuggestionProvider, cfg.SuggestionModel),
	})

	return &Services{
		DbServices: dbServices,
		Presets:    presets,
		Keys:       keys,
		Session:    session,
		Autosave:   NewAutosaveService(session, dbServices.Designs, cfg.AutosaveInterval),
	}, nil
}

// GeminiEditorFactory builds an image editor with the Gemini key current at
// call time.
func GeminiEditorFactory(keys *KeyringService, model string) EditorFactory {
	return func(ctx context.Context) (ImageEditor, error) {
		apiKey, err := keys.GetApiKey("gemini")
		if err != nil {
			return nil, fmt.Errorf("read gemini API key: %w", err)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key configured for gemini")
		}
		return client.NewGeminiImageEditor(ctx, apiKey, client.ImageEditorOptions{Model: model})
	}
}

// ProviderSuggesterFactory builds a suggester for provider with its current
// key.
func ProviderSuggesterFactory(keys *KeyringService, provider, model string) SuggesterFactory {
	return func(ctx context.Context) (SuggestionProvider, error) {
		apiKey, err := keys.GetApiKey(provider)
		if err != nil {
			return nil, fmt.Errorf("read %s API key: %w", provider, err)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key configured for %s", provider)
		}
		return client.NewProviderSuggester(ctx, apiKey, client.SuggesterOptions{Provider: provider, Model: model})
	}
}
