package mocks

import (
	"context"

	"landscapevision/internal/models"
)

type LeadRepositoryMock struct {
	UpsertFunc          func(ctx context.Context, lead *models.Lead) error
	FindByEmailFunc     func(ctx context.Context, email string) (*models.Lead, error)
	SetLatestDesignFunc func(ctx context.Context, email, designID string) error
	ListFunc            func(ctx context.Context, limit, offset int) ([]models.Lead, error)
}

func (m *LeadRepositoryMock) Upsert(ctx context.Context, lead *models.Lead) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, lead)
	}
	return nil
}

func (m *LeadRepositoryMock) FindByEmail(ctx context.Context, email string) (*models.Lead, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *LeadRepositoryMock) SetLatestDesign(ctx context.Context, email, designID string) error {
	if m.SetLatestDesignFunc != nil {
		return m.SetLatestDesignFunc(ctx, email, designID)
	}
	return nil
}

func (m *LeadRepositoryMock) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []models.Lead{}, nil
}
