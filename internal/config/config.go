package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Telegram struct {
		Token  string `env:"TG_TOKEN"`
		ChatID int64  `env:"TG_CHAT_ID"`
	}
	Database struct {
		Path string `env:"DB_PATH" envDefault:"knight-quest.db"`
	}
	Narration struct {
		APIKey      string        `env:"GEMINI_API_KEY"`
		FlavorModel string        `env:"FLAVOR_MODEL" envDefault:"gemini-3-flash-preview"`
		StoryModel  string        `env:"STORY_MODEL" envDefault:"gemini-3-pro-preview"`
		Timeout     time.Duration `env:"NARRATION_TIMEOUT" envDefault:"10s"`
	}
	Game struct {
		KnightName string `env:"KNIGHT_NAME" envDefault:"Sir Productivity"`
		Timezone   string `env:"TIMEZONE" envDefault:"Local"`
	}
	Schedule struct {
		Reset    string `env:"RESET_SCHEDULE" envDefault:"0 0 * * *"`
		Briefing string `env:"BRIEFING_SCHEDULE" envDefault:"0 8 * * *"`
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ Could not read .env: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Narration.Timeout <= 0 {
		return nil, fmt.Errorf("NARRATION_TIMEOUT must be positive, got %s", cfg.Narration.Timeout)
	}

	log.Printf("✅ Configuration loaded: db=%s, narration=%s", cfg.Database.Path, cfg.narrationMode())
	return cfg, nil
}

// RequireTelegram reports whether the bot settings needed by serve are present.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return errors.New("TG_TOKEN is not set; export it or put it in a .env file")
	}
	if c.Telegram.ChatID == 0 {
		return errors.New("TG_CHAT_ID is not set")
	}
	return nil
}

func (c *Config) narrationMode() string {
	if c.Narration.APIKey == "" {
		return "offline"
	}
	return "gemini"
}
