package vm

import (
	"github.com/retroenv/trivium/internal/arch/acc"
	"github.com/retroenv/trivium/internal/stack"
)

// Machine is the accumulator variant of the machine.
type Machine struct {
	State

	Return stack.Stack // return stack, only used by RPUSH and RPOP
	Acc    int8        // accumulator
}

// New returns a zero initialized accumulator machine.
func New() *Machine {
	return &Machine{}
}

// Run executes instructions until the machine halts or faults.
func (m *Machine) Run() Result {
	for m.Step() {
	}
	return m.Result()
}

// Step executes a single instruction and returns whether the machine is
// still running.
func (m *Machine) Step() bool {
	if !m.Running() {
		return false
	}
	op, ok := m.fetch()
	if !ok {
		return false
	}

	switch op {
	case acc.Noop:

	case acc.Push:
		m.Data.Push(byte(m.Acc))

	case acc.Pop:
		m.Acc = int8(m.Data.Pop())

	case acc.Rpush:
		m.Return.Push(byte(m.Acc))

	case acc.Rpop:
		m.Acc = int8(m.Return.Pop())

	case acc.Add:
		s1 := m.Data.Pop()
		s2 := m.Data.Pop()
		m.Data.Push(s2 + s1)

	case acc.Sub:
		s1 := m.Data.Pop()
		s2 := m.Data.Pop()
		m.Data.Push(s2 - s1)

	case acc.Load:
		address := m.Data.Pop()
		if m.checkAddress(OpLoad, address) {
			m.Acc = int8(m.Core[address])
		}

	case acc.Stor:
		address := m.Data.Pop()
		if m.checkAddress(OpStor, address) {
			m.Core[address] = byte(m.Acc)
		}

	case acc.Jmp:
		address := m.Data.Pop()
		if m.checkAddress(OpJump, address) {
			m.PC = uint(address)
		}

	case acc.Jeq:
		// the address is popped even if the jump is not taken
		address := m.Data.Pop()
		if m.Acc == 0 && m.checkAddress(OpJeq, address) {
			m.PC = uint(address)
		}

	case acc.Halt:
		m.halt()

	default:
		m.fail(ErrInvalidInstruction)
	}

	return m.Running()
}
