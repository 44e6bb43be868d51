// Package vm implements the interpreter engine of the machine: the machine
// state, the fetch-decode-execute loop and the fault model for both
// instruction set variants.
//
// A run ends either by executing HALT or by a fault. Faults are returned as
// ordinary data in a Result, the interpreter never panics the process.
package vm

import (
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/stack"
)

// CoreSize is the number of bytes of the core memory.
const CoreSize = arch.CoreSize

type runState int

const (
	running runState = iota
	halted
	panicked
)

// State holds the machine registers and memory shared by both variants.
type State struct {
	PC    uint           // program counter
	Core  [CoreSize]byte // code and data
	Data  stack.Stack    // data stack
	Steps uint64         // number of fetched instructions

	run   runState
	fault error
}

// Running returns whether the machine can execute further instructions.
func (s *State) Running() bool {
	return s.run == running
}

// Result returns the outcome of the run. It is only meaningful once
// Running returns false.
func (s *State) Result() Result {
	if s.run == panicked {
		return Result{Status: StatusPanic, Fault: s.fault}
	}
	return Result{Status: StatusOK}
}

// Memory returns the core memory of the machine.
func (s *State) Memory() *[CoreSize]byte {
	return &s.Core
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() State {
	return *s
}

// fetch returns the opcode at the program counter and advances it.
// It faults if the program counter is outside of the core.
func (s *State) fetch() (byte, bool) {
	if s.PC >= CoreSize {
		s.fail(ErrProgramCounterOutOfRange)
		return 0, false
	}
	op := s.Core[s.PC]
	s.PC++
	s.Steps++
	return op, true
}

// checkAddress faults if the address popped by op is outside of the core.
func (s *State) checkAddress(op string, address byte) bool {
	if int(address) >= CoreSize {
		s.fail(&AddressError{Op: op, Address: address})
		return false
	}
	return true
}

func (s *State) halt() {
	s.run = halted
}

func (s *State) fail(err error) {
	s.run = panicked
	s.fault = err
}
