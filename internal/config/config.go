// Package config creates the logger of the machine driver from the program options.
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/options"
)

// CreateLogger creates a logger for the given flags, debug logging takes
// precedence over quiet mode.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug:
		cfg.Level = log.DebugLevel
	case flags.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
