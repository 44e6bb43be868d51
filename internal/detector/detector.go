// Package detector handles instruction set variant detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/options"
)

// Detector handles variant detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new variant detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the variant from options or file auto-detection.
// An invalid variant option is reported by the caller, it is ignored here.
func (d *Detector) Detect(opts options.Program) arch.Variant {
	variant, _ := arch.VariantFromString(opts.Variant)
	if variant == "" {
		variant = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected variant",
			log.Stringer("variant", variant),
			log.String("file", opts.Input))
	}
	return variant
}

// detectFromFile determines the variant based on file extension.
func (d *Detector) detectFromFile(filename string) arch.Variant {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".lean", ".lasm":
		return arch.Lean
	default:
		return arch.Acc
	}
}
