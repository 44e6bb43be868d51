package vm

import "github.com/retroenv/trivium/internal/arch/lean"

// Lean is the lean variant of the machine with a single data stack.
type Lean struct {
	State
}

// NewLean returns a zero initialized lean machine.
func NewLean() *Lean {
	return &Lean{}
}

// Run executes instructions until the machine halts or faults.
func (m *Lean) Run() Result {
	for m.Step() {
	}
	return m.Result()
}

// Step executes a single instruction and returns whether the machine is
// still running.
func (m *Lean) Step() bool {
	if !m.Running() {
		return false
	}
	op, ok := m.fetch()
	if !ok {
		return false
	}

	switch op {
	case lean.Noop:

	case lean.Dup:
		m.Data.Push(m.Data.Peek())

	case lean.One:
		m.Data.Replace(m.Data.Peek()<<1 | 1)

	case lean.Zero:
		m.Data.Replace(m.Data.Peek() << 1)

	case lean.Add:
		s1 := m.Data.Pop()
		s2 := m.Data.Pop()
		m.Data.Push(s2 + s1)

	case lean.Sub:
		s1 := m.Data.Pop()
		s2 := m.Data.Pop()
		m.Data.Push(s2 - s1)

	case lean.Load:
		// the top of stack is both the address and the destination
		address := m.Data.Peek()
		if m.checkAddress(OpLoad, address) {
			m.Data.Replace(m.Core[address])
		}

	case lean.Pop:
		value := m.Data.Pop()
		address := m.Data.Pop()
		if m.checkAddress(OpPop, address) {
			m.Core[address] = value
		}

	case lean.Jpos:
		address := m.Data.Pop()
		test := int8(m.Data.Pop())
		if test >= 0 && m.checkAddress(OpJpos, address) {
			m.PC = uint(address)
		}

	case lean.Halt:
		m.halt()

	default:
		m.fail(ErrInvalidInstruction)
	}

	return m.Running()
}
