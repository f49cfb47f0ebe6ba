package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Scheduler SchedulerConfig
	OpenChat  OpenChatConfig
	Telegram  TelegramConfig
	Discord   DiscordConfig
	AI        AIConfig
	Queue     QueueConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// SchedulerConfig holds the content dispatch loop configuration
type SchedulerConfig struct {
	Interval time.Duration
}

// OpenChatConfig holds the outbound messaging endpoint configuration
type OpenChatConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TelegramConfig holds the Telegram listener configuration
type TelegramConfig struct {
	BotToken string
}

// DiscordConfig holds the Discord listener configuration
type DiscordConfig struct {
	BotToken string
}

// AIConfig holds the LLM completion endpoint configuration
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// QueueConfig holds the generation job queue configuration. An empty URL
// selects the in-memory queue.
type QueueConfig struct {
	URL  string
	Name string
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 6000),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DB", "chatcast"),
		},
		Scheduler: SchedulerConfig{
			Interval: getEnvDuration("SCHEDULER_INTERVAL", time.Minute),
		},
		OpenChat: OpenChatConfig{
			BaseURL: getEnv("OPENCHAT_API_URL", "https://api.openchat.com/v1"),
			Timeout: getEnvDuration("OPENCHAT_TIMEOUT", 30*time.Second),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Discord: DiscordConfig{
			BotToken: getEnv("DISCORD_BOT_TOKEN", ""),
		},
		AI: AIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			Timeout: getEnvDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Queue: QueueConfig{
			URL:  getEnv("AMQP_URL", ""),
			Name: getEnv("GENERATION_QUEUE", "generation_jobs"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
