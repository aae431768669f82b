package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"landscapevision/internal/assets"
	"landscapevision/internal/models"
)

type PresetService interface {
	Startup() error
	ListPresets() []models.LandscapePreset
	GetPreset(id string) (*models.LandscapePreset, error)
}

type presetService struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.LandscapePreset
}

type rawPresetFile struct {
	Presets []models.LandscapePreset `json:"presets"`
}

func NewPresetService() PresetService {
	return &presetService{byID: make(map[string]models.LandscapePreset)}
}

// Startup parses the embedded catalogue. Presets without an id or prompt
// are skipped.
func (s *presetService) Startup() error {
	var parsed rawPresetFile
	if err := json.Unmarshal(assets.PresetsData, &parsed); err != nil {
		return fmt.Errorf("parse presets asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.byID = make(map[string]models.LandscapePreset, len(parsed.Presets))
	for _, p := range parsed.Presets {
		p.ID = strings.TrimSpace(p.ID)
		p.Prompt = strings.TrimSpace(p.Prompt)
		if p.ID == "" || p.Prompt == "" {
			continue
		}
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return nil
}

func (s *presetService) ListPresets() []models.LandscapePreset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LandscapePreset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *presetService) GetPreset(id string) (*models.LandscapePreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("preset %s not found", id)
	}
	return &p, nil
}
