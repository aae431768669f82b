package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landscapevision/internal/models"
	"landscapevision/internal/services"
	"landscapevision/internal/tests/mocks"
)

func TestLeadService_Capture_TrimsAndPersists(t *testing.T) {
	var stored *models.Lead
	repo := &mocks.LeadRepositoryMock{
		UpsertFunc: func(ctx context.Context, lead *models.Lead) error {
			stored = lead
			return nil
		},
	}
	svc := services.NewLeadService(repo)

	lead, err := svc.Capture(context.Background(), models.UserLead{
		Name:  "  Ada Lovelace ",
		Email: " ada@example.com\t",
		Phone: " 0123 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", lead.Name)
	assert.Equal(t, "ada@example.com", lead.Email)
	assert.NotZero(t, lead.Timestamp)

	require.NotNil(t, stored)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Equal(t, "0123", stored.Phone)
}

func TestLeadService_Capture_Validation(t *testing.T) {
	svc := services.NewLeadService(&mocks.LeadRepositoryMock{})
	ctx := context.Background()

	_, err := svc.Capture(ctx, models.UserLead{Name: "", Email: "a@b.co"})
	assert.EqualError(t, err, "Please enter your name and email.")

	_, err = svc.Capture(ctx, models.UserLead{Name: "Ada", Email: "   "})
	assert.EqualError(t, err, "Please enter your name and email.")

	_, err = svc.Capture(ctx, models.UserLead{Name: "Ada", Email: "not-an-email"})
	assert.EqualError(t, err, "Please enter a valid email address.")
}

func TestLeadService_Capture_RepositoryFailureDoesNotBlock(t *testing.T) {
	repo := &mocks.LeadRepositoryMock{
		UpsertFunc: func(ctx context.Context, lead *models.Lead) error { return assert.AnError },
	}
	svc := services.NewLeadService(repo)

	lead, err := svc.Capture(context.Background(), models.UserLead{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", lead.Name)
}

func TestLeadService_AttachDesign(t *testing.T) {
	var gotEmail, gotID string
	repo := &mocks.LeadRepositoryMock{
		SetLatestDesignFunc: func(ctx context.Context, email, designID string) error {
			gotEmail, gotID = email, designID
			return nil
		},
	}
	svc := services.NewLeadService(repo)

	require.NoError(t, svc.AttachDesign(context.Background(), " ada@example.com ", "d-1"))
	assert.Equal(t, "ada@example.com", gotEmail)
	assert.Equal(t, "d-1", gotID)

	assert.Error(t, svc.AttachDesign(context.Background(), "", "d-1"))
	assert.Error(t, svc.AttachDesign(context.Background(), "ada@example.com", ""))
}
