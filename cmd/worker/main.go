// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/openwave/chatcast-backend/internal/ai"
	"github.com/openwave/chatcast-backend/internal/config"
	"github.com/openwave/chatcast-backend/internal/db"
	"github.com/openwave/chatcast-backend/internal/queue"
	"github.com/openwave/chatcast-backend/internal/repository"
	"github.com/openwave/chatcast-backend/internal/service"
)

const (
	maxRetries       = 3
	retryCountHeader = "x-retry-count"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if cfg.Queue.URL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	database, closeDB, err := db.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer closeDB()

	campaignRepo := repository.NewCampaignRepository(database)
	contentRepo := repository.NewContentRepository(database)
	generator := ai.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)

	generationService := &service.GenerationService{
		CampaignRepo: campaignRepo,
		ContentRepo:  contentRepo,
		AI:           generator,
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.Queue.URL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.Queue.Name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job queue.GenerationJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			if err := generationService.Process(context.Background(), job); err != nil {
				log.Println("Failed to process generation job:", err)
				// A broker requeue keeps the original delivery unchanged, so
				// the attempt count travels in a header on a fresh publish.
				attempt := retryCount(d.Headers) + 1
				if attempt > maxRetries {
					log.Printf("Dropping job %s after %d attempts", job.JobID, maxRetries)
				} else if err := ch.Publish("", q.Name, false, false, retryPublishing(d.Body, attempt)); err != nil {
					log.Println("⚠️ Failed to requeue job:", err)
				}
			}

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for generation jobs...")
	<-forever
}

func retryCount(headers amqp.Table) int {
	switch v := headers[retryCountHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

// retryPublishing clones a failed delivery for republication, carrying the
// attempt number so the cap in the consume loop is reachable.
func retryPublishing(body []byte, attempt int) amqp.Publishing {
	return amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Headers:     amqp.Table{retryCountHeader: int32(attempt)},
	}
}
