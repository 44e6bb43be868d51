package vm

import (
	"fmt"
	"io"

	"github.com/retroenv/trivium/internal/arch"
)

// CPU is implemented by both machine variants.
type CPU interface {
	// Step executes a single instruction and returns whether the machine is still running.
	Step() bool
	// Run executes instructions until the machine halts or faults.
	Run() Result
	// Running returns whether the machine can execute further instructions.
	Running() bool
	// Result returns the outcome of a finished run.
	Result() Result
	// Memory returns the core memory.
	Memory() *[CoreSize]byte
	// Snapshot returns a copy of the shared machine state.
	Snapshot() State
	// Dump writes a hexadecimal view of the machine state.
	Dump(w io.Writer) error
}

var (
	_ CPU = (*Machine)(nil)
	_ CPU = (*Lean)(nil)
)

// NewForVariant returns a zero initialized machine of the given variant.
func NewForVariant(variant arch.Variant) (CPU, error) {
	switch variant {
	case arch.Acc:
		return New(), nil
	case arch.Lean:
		return NewLean(), nil
	default:
		return nil, fmt.Errorf("unsupported variant '%s'", variant)
	}
}
