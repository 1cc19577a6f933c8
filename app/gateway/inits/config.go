package inits

import (
	"campus-connect/app/gateway/config"

	"github.com/caarlos0/env/v11"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
