// cmd/seeder/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/openwave/chatcast-backend/internal/config"
	"github.com/openwave/chatcast-backend/internal/db"
	"github.com/openwave/chatcast-backend/internal/model"
	"github.com/openwave/chatcast-backend/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	ctx := context.Background()
	database, closeDB, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer closeDB()

	campaignRepo := repository.NewCampaignRepository(database)
	contentRepo := repository.NewContentRepository(database)
	routeRepo := repository.NewRouteRepository(database)

	campaign := &model.Campaign{
		Principal: "demo-principal",
		Name:      "Launch Week",
		APIKey:    "demo-openchat-key",
		StartDate: time.Now().UTC(),
		Status:    model.CampaignStatusActive,
	}
	if err := campaignRepo.Create(ctx, campaign); err != nil {
		log.Fatal("failed to seed campaign:", err)
	}

	posts := []string{
		"We're live! Launch week starts today.",
		"Day two: a look behind the scenes of what we built.",
		"Day three: your questions, answered.",
	}
	for i, text := range posts {
		content := &model.Content{
			CampaignID:    campaign.ID,
			Content:       text,
			ScheduledTime: time.Now().UTC().Add(time.Duration(i*24) * time.Hour),
			Status:        model.ContentStatusPending,
		}
		if err := contentRepo.Create(ctx, content); err != nil {
			log.Fatal("failed to seed content:", err)
		}
	}

	route := &model.Route{
		Principal:      "demo-principal",
		Name:           "Announcements mirror",
		Platform:       model.PlatformTelegram,
		SourceID:       "-1001234567890",
		OpenChatAPIKey: "demo-openchat-key",
		Status:         model.RouteStatusActive,
		Filters: model.RouteFilters{
			IncludeText:  true,
			IncludeLinks: true,
		},
	}
	if err := routeRepo.Create(ctx, route); err != nil {
		log.Fatal("failed to seed route:", err)
	}

	log.Println("✅ Seeded demo campaign, content and route")
}
