package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayplan/internal/infra"
)

var Module = fx.Provide(
	infra.LoadConfig,
	provideLogger)

func provideLogger(cfg *infra.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
