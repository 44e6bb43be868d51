// Package lean describes the instruction set of the lean variant.
//
// The variant has a single data stack and no accumulator. Constants are
// synthesized bit by bit: DUP copies the top of stack and ONE and ZERO shift
// the top left by one bit, setting the new low bit to 1 or 0. Eight shifts
// replace every bit of the duplicated value.
//
// JPOS is the only jump. An unconditional jump is expressed by pushing a
// non negative test value below the target address.
package lean

import "github.com/retroenv/trivium/internal/arch"

// Opcodes of the lean variant.
const (
	Noop byte = 0x00
	Jpos byte = 0x01
	Dup  byte = 0x02
	One  byte = 0x03
	Zero byte = 0x04
	Add  byte = 0x05
	Sub  byte = 0x06
	Load byte = 0x07
	Pop  byte = 0x08
	Halt byte = 0xff
)

// Instructions is the instruction set of the lean variant.
var Instructions = arch.NewInstructionSet(arch.Lean,
	&arch.Instruction{Name: "noop", Opcode: Noop},
	&arch.Instruction{Name: "jpos", Opcode: Jpos},
	&arch.Instruction{Name: "dup", Opcode: Dup},
	&arch.Instruction{Name: "one", Opcode: One},
	&arch.Instruction{Name: "zero", Opcode: Zero},
	&arch.Instruction{Name: "add", Opcode: Add},
	&arch.Instruction{Name: "sub", Opcode: Sub},
	&arch.Instruction{Name: "load", Opcode: Load},
	&arch.Instruction{Name: "pop", Opcode: Pop},
	&arch.Instruction{Name: "halt", Opcode: Halt, Terminal: true},
)
