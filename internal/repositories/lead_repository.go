package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"landscapevision/internal/models"
)

type LeadRepository interface {
	Upsert(ctx context.Context, lead *models.Lead) error
	FindByEmail(ctx context.Context, email string) (*models.Lead, error)
	SetLatestDesign(ctx context.Context, email, designID string) error
	List(ctx context.Context, limit, offset int) ([]models.Lead, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Upsert inserts the lead or refreshes the contact details of an existing
// lead with the same email.
func (r *leadRepository) Upsert(ctx context.Context, lead *models.Lead) error {
	if lead.Email == "" {
		return fmt.Errorf("email is required")
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "property_address", "updated_at"}),
	}).Create(lead).Error; err != nil {
		return fmt.Errorf("upserting lead %s: %w", lead.Email, err)
	}
	return nil
}

func (r *leadRepository) FindByEmail(ctx context.Context, email string) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding lead %s: %w", email, err)
	}
	return &lead, nil
}

func (r *leadRepository) SetLatestDesign(ctx context.Context, email, designID string) error {
	res := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("email = ?", email).
		Update("latest_design_id", designID)
	if res.Error != nil {
		return fmt.Errorf("updating lead %s: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lead %s not found", email)
	}
	return nil
}

func (r *leadRepository) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	var leads []models.Lead
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}
