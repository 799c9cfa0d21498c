package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the auth module.
type Config struct {
	// BcryptCost is the work factor for stored password hashes
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
	// GeneratedPasswordLength is the length of passwords issued by the forgot flow
	GeneratedPasswordLength int `env:"GENERATED_PASSWORD_LENGTH" envDefault:"7"`
	// Realm is announced in the WWW-Authenticate challenge
	Realm string `env:"AUTH_REALM" envDefault:"adclad"`

	// Mail sender identity
	MailFromName    string `env:"MAIL_FROM_NAME" envDefault:"adclad"`
	MailFromAddress string `env:"MAIL_FROM_ADDRESS" envDefault:"no-reply@adclad.local"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.GeneratedPasswordLength < 6 || c.GeneratedPasswordLength > 32 {
		return errors.New("generated_password_length must be between 6 and 32")
	}
	if c.MailFromAddress == "" {
		return errors.New("mail_from_address is required")
	}
	return nil
}

// Default returns the configuration used when no environment is present
func Default() *Config {
	return &Config{
		BcryptCost:              bcrypt.DefaultCost,
		GeneratedPasswordLength: 7,
		Realm:                   "adclad",
		MailFromName:            "adclad",
		MailFromAddress:         "no-reply@adclad.local",
	}
}
