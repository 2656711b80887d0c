// Package modkit provides module wiring and core deps
package modkit

import (
	"locbridge/internal/core/settings"
	"locbridge/internal/platform/config"
	"locbridge/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	Settings settings.Settings
}

// NewDeps builds Deps from the process environment: the root logger, a LOCBRIDGE_
// config view and settings loaded from LOCBRIDGE_CONFIG with the env overlay applied
func NewDeps() (Deps, error) {
	cfg := config.New().Prefix("LOCBRIDGE_")
	s, err := settings.Load(cfg.MayString("CONFIG", ""))
	if err != nil {
		return Deps{}, err
	}
	s.ApplyEnv(cfg)
	return Deps{Log: *logger.Get(), Cfg: cfg, Settings: s}, nil
}
