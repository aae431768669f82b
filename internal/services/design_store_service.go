package services

import (
	"context"
	"encoding/json"
	"log"

	"landscapevision/internal/models"
	"landscapevision/internal/repositories"
)

const (
	DesignsKey = "landscape-vision-designs"
	DraftKey   = "landscape-vision-autosave"
	UserKey    = "landscape_vision_user"
)

// DesignStoreService keeps the local portfolio, the autosave draft and the
// captured user record on top of an opaque blob store. Every failure is
// logged and turned into an empty or false result; callers never see the
// underlying cause.
//
// Updates are read-modify-write on a single blob without locking, so two
// concurrent writers can drop each other's change.
type DesignStoreService interface {
	List(ctx context.Context) []models.SavedDesign
	Upsert(ctx context.Context, design models.SavedDesign) bool
	Remove(ctx context.Context, id string) []models.SavedDesign
	SaveDraft(ctx context.Context, state models.AutoSaveState)
	GetDraft(ctx context.Context) *models.AutoSaveState
	ClearDraft(ctx context.Context)
	SaveUser(ctx context.Context, user models.UserLead) bool
	GetUser(ctx context.Context) *models.UserLead
}

type designStoreService struct {
	blobs repositories.BlobRepository
}

func NewDesignStoreService(blobs repositories.BlobRepository) DesignStoreService {
	return &designStoreService{blobs: blobs}
}

func (s *designStoreService) List(ctx context.Context) []models.SavedDesign {
	designs, err := s.load(ctx)
	if err != nil {
		log.Printf("Failed to load designs: %v", err)
		return []models.SavedDesign{}
	}
	return designs
}

func (s *designStoreService) load(ctx context.Context) ([]models.SavedDesign, error) {
	raw, err := s.blobs.Get(ctx, DesignsKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.SavedDesign{}, nil
	}
	var designs []models.SavedDesign
	if err := json.Unmarshal(raw, &designs); err != nil {
		return nil, err
	}
	if designs == nil {
		designs = []models.SavedDesign{}
	}
	return designs, nil
}

func (s *designStoreService) store(ctx context.Context, designs []models.SavedDesign) error {
	raw, err := json.Marshal(designs)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, DesignsKey, raw)
}

// Upsert replaces the design with the same id in place, or prepends it.
func (s *designStoreService) Upsert(ctx context.Context, design models.SavedDesign) bool {
	current, err := s.load(ctx)
	if err != nil {
		log.Printf("Failed to save design: %v", err)
		return false
	}

	updated := make([]models.SavedDesign, 0, len(current)+1)
	replaced := false
	for _, d := range current {
		if d.ID == design.ID {
			d = design
			replaced = true
		}
		updated = append(updated, d)
	}
	if !replaced {
		updated = append([]models.SavedDesign{design}, updated...)
	}

	if err := s.store(ctx, updated); err != nil {
		log.Printf("Failed to save design: %v", err)
		return false
	}
	return true
}

// Remove deletes the design with id and returns what is left.
func (s *designStoreService) Remove(ctx context.Context, id string) []models.SavedDesign {
	current, err := s.load(ctx)
	if err != nil {
		log.Printf("Failed to delete design: %v", err)
		return []models.SavedDesign{}
	}
	updated := make([]models.SavedDesign, 0, len(current))
	for _, d := range current {
		if d.ID != id {
			updated = append(updated, d)
		}
	}
	if err := s.store(ctx, updated); err != nil {
		log.Printf("Failed to delete design: %v", err)
		return []models.SavedDesign{}
	}
	return updated
}

func (s *designStoreService) SaveDraft(ctx context.Context, state models.AutoSaveState) {
	raw, err := json.Marshal(state)
	if err == nil {
		err = s.blobs.Set(ctx, DraftKey, raw)
	}
	if err != nil {
		log.Printf("Failed to save draft: %v", err)
	}
}

func (s *designStoreService) GetDraft(ctx context.Context) *models.AutoSaveState {
	raw, err := s.blobs.Get(ctx, DraftKey)
	if err != nil {
		log.Printf("Failed to load draft: %v", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var draft models.AutoSaveState
	if err := json.Unmarshal(raw, &draft); err != nil {
		log.Printf("Failed to load draft: %v", err)
		return nil
	}
	return &draft
}

func (s *designStoreService) ClearDraft(ctx context.Context) {
	if err := s.blobs.Delete(ctx, DraftKey); err != nil {
		log.Printf("Failed to clear draft: %v", err)
	}
}

func (s *designStoreService) SaveUser(ctx context.Context, user models.UserLead) bool {
	raw, err := json.Marshal(user)
	if err == nil {
		err = s.blobs.Set(ctx, UserKey, raw)
	}
	if err != nil {
		log.Printf("Failed to save user: %v", err)
		return false
	}
	return true
}

func (s *designStoreService) GetUser(ctx context.Context) *models.UserLead {
	raw, err := s.blobs.Get(ctx, UserKey)
	if err != nil || len(raw) == 0 {
		if err != nil {
			log.Printf("Failed to load user: %v", err)
		}
		return nil
	}
	var user models.UserLead
	if err := json.Unmarshal(raw, &user); err != nil {
		log.Printf("Failed to load user: %v", err)
		return nil
	}
	return &user
}
