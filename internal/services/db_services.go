package services

import (
	"landscapevision/internal/repositories"

	"gorm.io/gorm"
)

// DbServices aggregates the services backed by the database.
type DbServices struct {
	Designs DesignStoreService
	Leads   LeadService
}

// NewDbServices constructs the database-backed services from db.
func NewDbServices(db *gorm.DB) *DbServices {
	blobRepo := repositories.NewBlobRepository(db)
	leadRepo := repositories.NewLeadRepository(db)

	return &DbServices{
		Designs: NewDesignStoreService(blobRepo),
		Leads:   NewLeadService(leadRepo),
	}
}
