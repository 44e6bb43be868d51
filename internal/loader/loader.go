// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/assembler"
	"github.com/retroenv/trivium/internal/options"
	"github.com/retroenv/trivium/internal/program"
)

// ErrImageTooLarge is returned for images that do not fit into the core.
var ErrImageTooLarge = errors.New("image exceeds core size")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load loads the program of the input file for the given variant.
// Assembler source files are assembled, all other files are read as raw
// core images. Without an input file an empty program is returned and the
// machine runs on a zero filled core.
func (l *Loader) Load(opts options.Program, variant arch.Variant) (*program.Program, error) {
	if opts.Input == "" {
		return program.New(variant, nil), nil
	}

	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	if IsSource(opts.Input) {
		app, err := assembler.Assemble(variant, file)
		if err != nil {
			return nil, fmt.Errorf("assembling %s: %w", opts.Input, err)
		}
		return app, nil
	}

	image, err := io.ReadAll(io.LimitReader(file, arch.CoreSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	if len(image) > arch.CoreSize {
		return nil, fmt.Errorf("file %s: %w", opts.Input, ErrImageTooLarge)
	}
	return program.New(variant, image), nil
}

// IsSource returns whether the file name has an assembler source extension.
func IsSource(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".asm", ".lasm":
		return true
	default:
		return false
	}
}

// Install copies the image to the start of the core. The rest of the core
// is left unchanged.
func Install(core *[arch.CoreSize]byte, image []byte) error {
	if len(image) > len(core) {
		return fmt.Errorf("%d bytes: %w", len(image), ErrImageTooLarge)
	}
	copy(core[:], image)
	return nil
}
