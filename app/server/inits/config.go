package inits

import (
	"campus-connect/app/server/config"
	"fmt"

	"github.com/caarlos0/env/v11"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, nil
}
