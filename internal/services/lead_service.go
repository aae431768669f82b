package services

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"landscapevision/internal/models"
	"landscapevision/internal/repositories"
)

type LeadService interface {
	// Capture validates the signup form and records the lead.
	Capture(ctx context.Context, lead models.UserLead) (*models.UserLead, error)
	// AttachDesign points the lead at the design it saved last.
	AttachDesign(ctx context.Context, email, designID string) error
	List(ctx context.Context, limit, offset int) ([]models.Lead, error)
}

type leadService struct {
	leads repositories.LeadRepository
	now   func() time.Time
}

func NewLeadService(leads repositories.LeadRepository) LeadService {
	return &leadService{leads: leads, now: time.Now}
}

func (s *leadService) Capture(ctx context.Context, lead models.UserLead) (*models.UserLead, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.PropertyAddress = strings.TrimSpace(lead.PropertyAddress)

	if lead.Name == "" || lead.Email == "" {
		return nil, errors.New("Please enter your name and email.")
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return nil, errors.New("Please enter a valid email address.")
	}
	lead.Timestamp = s.now().UnixMilli()

	// the captured identity stays usable even if the lead row cannot be written
	if err := s.leads.Upsert(ctx, &models.Lead{
		Email:           lead.Email,
		Name:            lead.Name,
		Phone:           lead.Phone,
		PropertyAddress: lead.PropertyAddress,
	}); err != nil {
		log.Printf("Failed to record lead %s: %v", lead.Email, err)
	}
	return &lead, nil
}

func (s *leadService) AttachDesign(ctx context.Context, email, designID string) error {
	email = strings.TrimSpace(email)
	if email == "" || designID == "" {
		return errors.New("email and design id are required")
	}
	return s.leads.SetLatestDesign(ctx, email, designID)
}

func (s *leadService) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	return s.leads.List(ctx, limit, offset)
}
