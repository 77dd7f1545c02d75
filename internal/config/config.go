package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	ProjectID string `env:"PROJECTID,required"`
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOGLEVEL" envDefault:"info"`

	// JWTSecretName takes precedence over JWTSecret when set; the value is
	// resolved from Secret Manager at bootstrap.
	JWTSecret     string        `env:"JWTSECRET"`
	JWTSecretName string        `env:"JWTSECRETNAME"`
	TokenTTL      time.Duration `env:"TOKENTTL" envDefault:"720h"`

	KMSKeyName string `env:"KMSKEYNAME"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
