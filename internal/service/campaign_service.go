// internal/service/campaign_service.go
package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
}

// CampaignInput carries the caller-editable campaign fields.
type CampaignInput struct {
	Principal string     `json:"principal"`
	Name      string     `json:"name"`
	APIKey    string     `json:"apiKey"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Status    string     `json:"status"`
}

func validCampaignStatus(status string) bool {
	return status == model.CampaignStatusActive || status == model.CampaignStatusPaused
}

func (s *CampaignService) CreateCampaign(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	if in.Principal == "" {
		return nil, appErrors.NewValidation("principal is required")
	}
	if in.Name == "" {
		return nil, appErrors.NewValidation("name is required")
	}
	if in.APIKey == "" {
		return nil, appErrors.NewValidation("apiKey is required")
	}
	if in.StartDate.IsZero() {
		return nil, appErrors.NewValidation("startDate is required")
	}
	if in.Status != "" && !validCampaignStatus(in.Status) {
		return nil, appErrors.NewValidation("status must be active or paused")
	}

	c := &model.Campaign{
		Principal: in.Principal,
		Name:      in.Name,
		APIKey:    in.APIKey,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    in.Status,
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context, principal string) ([]*model.Campaign, error) {
	if principal == "" {
		return nil, appErrors.NewValidation("principal is required")
	}
	return s.CampaignRepo.ListByPrincipal(ctx, principal)
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, id primitive.ObjectID, in CampaignInput) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(campaign.Principal, in.Principal); err != nil {
		return nil, err
	}

	if in.Name != "" {
		campaign.Name = in.Name
	}
	if in.APIKey != "" {
		campaign.APIKey = in.APIKey
	}
	if !in.StartDate.IsZero() {
		campaign.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		campaign.EndDate = in.EndDate
	}
	if in.Status != "" {
		if !validCampaignStatus(in.Status) {
			return nil, appErrors.NewValidation("status must be active or paused")
		}
		campaign.Status = in.Status
	}

	if err := s.CampaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// ToggleStatus flips a campaign between active and paused.
func (s *CampaignService) ToggleStatus(ctx context.Context, id primitive.ObjectID, principal string) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(campaign.Principal, principal); err != nil {
		return nil, err
	}

	if campaign.Status == model.CampaignStatusActive {
		campaign.Status = model.CampaignStatusPaused
	} else {
		campaign.Status = model.CampaignStatusActive
	}
	if err := s.CampaignRepo.UpdateStatus(ctx, id, campaign.Status); err != nil {
		return nil, err
	}
	return campaign, nil
}

// DeleteCampaign removes the campaign without cascading to its content.
// Orphaned due items are failed with "Campaign not found" by the scheduler.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id primitive.ObjectID, principal string) error {
	campaign, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(campaign.Principal, principal); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(ctx, id)
}
