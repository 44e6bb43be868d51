// Package isa resolves the instruction set of a variant.
package isa

import (
	"fmt"

	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/acc"
	"github.com/retroenv/trivium/internal/arch/lean"
)

// ForVariant returns the instruction set of the given variant.
func ForVariant(variant arch.Variant) (*arch.InstructionSet, error) {
	switch variant {
	case arch.Acc:
		return acc.Instructions, nil
	case arch.Lean:
		return lean.Instructions, nil
	default:
		return nil, fmt.Errorf("unsupported variant '%s'", variant)
	}
}
