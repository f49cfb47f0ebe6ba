// internal/service/route_service.go
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/repository"
)

type RouteService struct {
	RouteRepo repository.RouteRepositoryInterface
}

// RouteInput carries the caller-editable route fields.
type RouteInput struct {
	Principal      string               `json:"principal"`
	Name           string               `json:"name"`
	Platform       string               `json:"platform"`
	SourceID       string               `json:"sourceId"`
	OpenChatAPIKey string               `json:"openchatApiKey"`
	Status         string               `json:"status"`
	Filters        *model.RouteFilters  `json:"filters"`
	Twitter        *model.TwitterConfig `json:"twitter"`
}

func validPlatform(platform string) bool {
	switch platform {
	case model.PlatformTelegram, model.PlatformDiscord, model.PlatformTwitter:
		return true
	}
	return false
}

func validRouteStatus(status string) bool {
	return status == model.RouteStatusActive || status == model.RouteStatusPaused
}

func (s *RouteService) CreateRoute(ctx context.Context, in RouteInput) (*model.Route, error) {
	if in.Principal == "" {
		return nil, appErrors.NewValidation("principal is required")
	}
	if in.Name == "" {
		return nil, appErrors.NewValidation("name is required")
	}
	if !validPlatform(in.Platform) {
		return nil, appErrors.NewValidation("platform must be telegram, discord or twitter")
	}
	if in.SourceID == "" {
		return nil, appErrors.NewValidation("sourceId is required")
	}
	if in.OpenChatAPIKey == "" {
		return nil, appErrors.NewValidation("openchatApiKey is required")
	}
	if in.Status != "" && !validRouteStatus(in.Status) {
		return nil, appErrors.NewValidation("status must be active or paused")
	}
	if in.Platform == model.PlatformTwitter && (in.Twitter == nil || in.Twitter.Username == "") {
		return nil, appErrors.NewValidation("twitter.username is required for twitter routes")
	}

	route := &model.Route{
		Principal:      in.Principal,
		Name:           in.Name,
		Platform:       in.Platform,
		SourceID:       in.SourceID,
		OpenChatAPIKey: in.OpenChatAPIKey,
		Status:         in.Status,
		Twitter:        in.Twitter,
	}
	if in.Filters != nil {
		route.Filters = *in.Filters
	}
	if err := s.RouteRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *RouteService) ListRoutes(ctx context.Context, principal string) ([]*model.Route, error) {
	if principal == "" {
		return nil, appErrors.NewValidation("principal is required")
	}
	return s.RouteRepo.ListByPrincipal(ctx, principal)
}

func (s *RouteService) UpdateRoute(ctx context.Context, id primitive.ObjectID, in RouteInput) (*model.Route, error) {
	route, err := s.RouteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(route.Principal, in.Principal); err != nil {
		return nil, err
	}

	if in.Name != "" {
		route.Name = in.Name
	}
	if in.Platform != "" {
		if !validPlatform(in.Platform) {
			return nil, appErrors.NewValidation("platform must be telegram, discord or twitter")
		}
		route.Platform = in.Platform
	}
	if in.SourceID != "" {
		route.SourceID = in.SourceID
	}
	if in.OpenChatAPIKey != "" {
		route.OpenChatAPIKey = in.OpenChatAPIKey
	}
	if in.Status != "" {
		if !validRouteStatus(in.Status) {
			return nil, appErrors.NewValidation("status must be active or paused")
		}
		route.Status = in.Status
	}
	if in.Filters != nil {
		route.Filters = *in.Filters
	}
	if in.Twitter != nil {
		route.Twitter = in.Twitter
	}

	if err := s.RouteRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *RouteService) DeleteRoute(ctx context.Context, id primitive.ObjectID, principal string) error {
	route, err := s.RouteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(route.Principal, principal); err != nil {
		return err
	}
	return s.RouteRepo.Delete(ctx, id)
}
