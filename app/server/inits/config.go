package inits

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"user-directory/app/server/config"
)

func Config() (*config.Config, error) {
	// 基于环境变量的自动映射
	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
