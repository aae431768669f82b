package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"landscapevision/internal/models"
)

// BlobRepository is an opaque key/value store. Values are stored as-is.
type BlobRepository interface {
	// Get returns nil, nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type blobRepository struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) BlobRepository {
	return &blobRepository{db: db}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	var blob models.Blob
	if err := r.db.WithContext(ctx).Where("blob_key = ?", key).Take(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting blob %q: %w", key, err)
	}
	return blob.Value, nil
}

func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	record := models.Blob{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("setting blob %q: %w", key, err)
	}
	return nil
}

func (r *blobRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&models.Blob{}).Error; err != nil {
		return fmt.Errorf("deleting blob %q: %w", key, err)
	}
	return nil
}
