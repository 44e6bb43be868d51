// Package acc describes the instruction set of the accumulator variant.
//
// The variant has a data stack, a separate return stack and a signed 8-bit
// accumulator. Instructions are grouped into three categories:
//   - Control: NOOP, JMP, JEQ, HALT
//   - Stack: PUSH, POP, RPUSH, RPOP
//   - Arithmetic and memory: ADD, SUB, LOAD, STOR
//
// Every instruction is encoded as a single byte without operands, all
// operands are taken from the stacks or the accumulator.
package acc

import "github.com/retroenv/trivium/internal/arch"

// Opcodes of the accumulator variant.
const (
	Noop  byte = 0x00
	Jmp   byte = 0x01
	Jeq   byte = 0x02
	Push  byte = 0x03
	Pop   byte = 0x04
	Rpush byte = 0x05
	Rpop  byte = 0x06
	Add   byte = 0x07
	Sub   byte = 0x08
	Load  byte = 0x09
	Stor  byte = 0x0a
	Halt  byte = 0xff
)

// Instructions is the instruction set of the accumulator variant.
var Instructions = arch.NewInstructionSet(arch.Acc,
	&arch.Instruction{Name: "noop", Opcode: Noop},
	&arch.Instruction{Name: "jmp", Opcode: Jmp, Terminal: true},
	&arch.Instruction{Name: "jeq", Opcode: Jeq},
	&arch.Instruction{Name: "push", Opcode: Push},
	&arch.Instruction{Name: "pop", Opcode: Pop},
	&arch.Instruction{Name: "rpush", Opcode: Rpush},
	&arch.Instruction{Name: "rpop", Opcode: Rpop},
	&arch.Instruction{Name: "add", Opcode: Add},
	&arch.Instruction{Name: "sub", Opcode: Sub},
	&arch.Instruction{Name: "load", Opcode: Load},
	&arch.Instruction{Name: "stor", Opcode: Stor},
	&arch.Instruction{Name: "halt", Opcode: Halt, Terminal: true},
)
