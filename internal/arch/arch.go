// Package arch contains the types shared by the instruction set descriptions
// of the machine variants. It acts as a bridge between the machine, the
// assembler and the disassembler.
package arch

import (
	"fmt"
	"strings"
)

// CoreSize is the number of addressable bytes of the core memory.
// Code and data share this address space.
const CoreSize = 64

// Variant names an instruction set variant.
type Variant string

// Supported instruction set variants.
const (
	// Acc is the variant with a data stack, a return stack and an accumulator.
	Acc Variant = "acc"
	// Lean is the variant with a single data stack and bit construction opcodes.
	Lean Variant = "lean"
)

// Variants lists all supported variants.
var Variants = []Variant{Acc, Lean}

// VariantFromString returns the variant matching the given name.
// An empty name returns an empty variant without error.
func VariantFromString(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}
	for _, v := range Variants {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unsupported variant '%s'", name)
}

func (v Variant) String() string {
	return string(v)
}
