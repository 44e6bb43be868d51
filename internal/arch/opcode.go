package arch

import (
	"slices"
	"strings"
)

// Instruction describes a single one byte instruction of a variant.
type Instruction struct {
	Name   string // lower case mnemonic
	Opcode byte   // encoded byte value

	// Terminal is set for instructions after which execution never falls
	// through to the next byte.
	Terminal bool
}

// InstructionSet maps opcodes and mnemonics of a variant to instructions.
type InstructionSet struct {
	variant Variant
	opcodes map[byte]*Instruction
	names   map[string]*Instruction
}

// NewInstructionSet returns an instruction set for the given instructions.
func NewInstructionSet(variant Variant, instructions ...*Instruction) *InstructionSet {
	set := &InstructionSet{
		variant: variant,
		opcodes: make(map[byte]*Instruction, len(instructions)),
		names:   make(map[string]*Instruction, len(instructions)),
	}
	for _, ins := range instructions {
		set.opcodes[ins.Opcode] = ins
		set.names[ins.Name] = ins
	}
	return set
}

// Variant returns the variant that the set describes.
func (s *InstructionSet) Variant() Variant {
	return s.variant
}

// Opcode returns the instruction encoded by the given byte.
func (s *InstructionSet) Opcode(b byte) (*Instruction, bool) {
	ins, ok := s.opcodes[b]
	return ins, ok
}

// Instruction returns the instruction for the case insensitive mnemonic.
func (s *InstructionSet) Instruction(name string) (*Instruction, bool) {
	ins, ok := s.names[strings.ToLower(name)]
	return ins, ok
}

// Instructions returns all instructions sorted by opcode.
func (s *InstructionSet) Instructions() []*Instruction {
	instructions := make([]*Instruction, 0, len(s.opcodes))
	for _, ins := range s.opcodes {
		instructions = append(instructions, ins)
	}
	slices.SortFunc(instructions, func(a, b *Instruction) int {
		return int(a.Opcode) - int(b.Opcode)
	})
	return instructions
}
