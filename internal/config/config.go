// Package config loads the bot's configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken     string `env:"DISCORD_TOKEN,required"`
	ShardCount       int    `env:"SHARD_COUNT" envDefault:"1"`
	GuildID          string `env:"GUILD_ID"` // optional: scope slash commands to one guild
	LavalinkAddr     string `env:"LAVALINK_ADDR" envDefault:"ws://127.0.0.1:2333"`
	LavalinkRest     string `env:"LAVALINK_REST" envDefault:"http://127.0.0.1:2333"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD" envDefault:"youshallnotpass"`
}

// New reads the environment into a Config. A missing .env file is fine;
// system environment variables always win.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.ShardCount < 1 {
		cfg.ShardCount = 1
	}
	return cfg, nil
}
