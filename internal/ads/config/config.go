package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

// RedisConfig holds the settings of the advertisement event stream
type RedisConfig struct {
	Enabled      bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host         string `env:"REDIS_HOST" envDefault:"localhost"`
	Port         int    `env:"REDIS_PORT" envDefault:"6379"`
	Password     string `env:"REDIS_PASSWORD"`
	DB           int    `env:"REDIS_DB" envDefault:"0"`
	Stream       string `env:"REDIS_STREAM" envDefault:"adclad:ads:events"`
	StreamMaxLen int64  `env:"REDIS_STREAM_MAX_LEN" envDefault:"10000"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Config holds all configuration for the ads module.
type Config struct {
	// DefaultPageLimit is the page size used when a listing does not send one
	DefaultPageLimit int `env:"DEFAULT_PAGE_LIMIT" envDefault:"20"`

	// WebSocketPath is where the realtime advertisement feed is mounted
	WebSocketPath string `env:"WEBSOCKET_PATH" envDefault:"/ws/ads"`
	// ClientSendChannelBuffer is the per-connection outbound queue size
	ClientSendChannelBuffer int `env:"CLIENT_SEND_CHANNEL_BUFFER" envDefault:"64"`

	Redis RedisConfig
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load ads configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.DefaultPageLimit <= 0 {
		return errors.New("default_page_limit must be positive")
	}
	if !strings.HasPrefix(c.WebSocketPath, "/") {
		return errors.New("websocket_path must start with /")
	}
	if c.ClientSendChannelBuffer <= 0 {
		return errors.New("client_send_channel_buffer must be positive")
	}
	if c.Redis.Enabled && c.Redis.Stream == "" {
		return errors.New("redis_stream is required when redis is enabled")
	}
	return nil
}

// Default returns the configuration used when no environment is present
func Default() *Config {
	return &Config{
		DefaultPageLimit:        20,
		WebSocketPath:           "/ws/ads",
		ClientSendChannelBuffer: 64,
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         6379,
			Stream:       "adclad:ads:events",
			StreamMaxLen: 10000,
		},
	}
}
