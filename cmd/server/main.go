// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/openwave/chatcast-backend/internal/ai"
	"github.com/openwave/chatcast-backend/internal/config"
	"github.com/openwave/chatcast-backend/internal/controller"
	"github.com/openwave/chatcast-backend/internal/db"
	"github.com/openwave/chatcast-backend/internal/forward"
	"github.com/openwave/chatcast-backend/internal/openchat"
	"github.com/openwave/chatcast-backend/internal/platform/discord"
	"github.com/openwave/chatcast-backend/internal/platform/telegram"
	"github.com/openwave/chatcast-backend/internal/queue"
	"github.com/openwave/chatcast-backend/internal/repository"
	"github.com/openwave/chatcast-backend/internal/scheduler"
	"github.com/openwave/chatcast-backend/internal/service"
)

func main() {
	// Load .env
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
	instanceRepo := repository.NewInstanceRepository(database)

	dispatcher := openchat.New(cfg.OpenChat.BaseURL, cfg.OpenChat.Timeout)
	generator := ai.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)

	generationService := &service.GenerationService{
		CampaignRepo: campaignRepo,
		ContentRepo:  contentRepo,
		AI:           generator,
	}

	// Generation jobs go through RabbitMQ when configured, otherwise an
	// in-process queue handles them in this binary.
	var publisher queue.Publisher
	if cfg.Queue.URL != "" {
		amqpPub, err := queue.NewAMQPPublisher(cfg.Queue.URL, cfg.Queue.Name)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer amqpPub.Close()
		publisher = amqpPub
	} else {
		log.Println("📩 AMQP_URL not set, processing generation jobs in-process")
		inmem := queue.NewInMemoryQueue()
		_ = inmem.Subscribe(controller.GenerationTopic, func(payload any) error {
			job, ok := payload.(queue.GenerationJob)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected GenerationJob")
				return nil
			}
			return generationService.Process(context.Background(), job)
		})
		publisher = inmem
	}

	campaignService := &service.CampaignService{CampaignRepo: campaignRepo}
	routeService := &service.RouteService{RouteRepo: routeRepo}

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	routeController := &controller.RouteController{RouteService: routeService}
	contentController := &controller.ContentController{ContentRepo: contentRepo, CampaignRepo: campaignRepo}
	aiController := &controller.AIController{Generator: generator, Queue: publisher}
	instanceController := &controller.InstanceController{InstanceRepo: instanceRepo}

	sched := scheduler.New(contentRepo, campaignRepo, dispatcher, cfg.Scheduler.Interval)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler:", err)
	}
	defer sched.Stop()

	forwarder := &forward.Forwarder{Routes: routeRepo, Dispatcher: dispatcher}

	if cfg.Telegram.BotToken != "" {
		tg := telegram.New(cfg.Telegram.BotToken, forwarder)
		if err := tg.Start(ctx); err != nil {
			log.Println("⚠️ Failed to start Telegram bot:", err)
		} else {
			defer tg.Stop()
		}
	}

	if cfg.Discord.BotToken != "" {
		dc := discord.New(cfg.Discord.BotToken, forwarder)
		if err := dc.Start(ctx); err != nil {
			log.Println("⚠️ Failed to start Discord bot:", err)
		} else {
			defer dc.Stop()
		}
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		// Campaign routes
		r.Post("/campaigns", campaignController.CreateCampaign)
		r.Get("/campaigns", campaignController.ListCampaigns)
		r.Put("/campaigns/{id}", campaignController.UpdateCampaign)
		r.Patch("/campaigns/{id}/status", campaignController.ToggleStatus)
		r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)

		// Route routes
		r.Post("/routes", routeController.CreateRoute)
		r.Get("/routes", routeController.ListRoutes)
		r.Put("/routes/{id}", routeController.UpdateRoute)
		r.Delete("/routes/{id}", routeController.DeleteRoute)

		// Content routes
		r.Post("/contents", contentController.CreateContent)
		r.Get("/contents", contentController.ListContents)
		r.Put("/contents/{id}", contentController.UpdateContent)
		r.Delete("/contents/{id}", contentController.DeleteContent)

		// AI routes
		r.Post("/ai/generate", aiController.GenerateContent)
		r.Post("/ai/bulk-generate", aiController.BulkGenerate)

		// AI chat instance routes
		r.Post("/instances", instanceController.SaveInstance)
		r.Get("/instances", instanceController.ListInstances)
		r.Get("/instances/{id}", instanceController.GetInstance)
		r.Delete("/instances/{id}", instanceController.DeleteInstance)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Server running on :%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error:", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️ Server shutdown error:", err)
	}
}
