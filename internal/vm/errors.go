package vm

import (
	"errors"
	"fmt"
)

// Faults that end a run. The set is closed, every fault reported in a
// Result is one of these errors or wraps ErrAddressOutOfRange.
var (
	ErrProgramCounterOutOfRange = errors.New("program counter out of range")
	ErrInvalidInstruction       = errors.New("invalid instruction")
	ErrAddressOutOfRange        = errors.New("address out of range")
)

// Operation names reported by address faults.
const (
	OpLoad = "load"
	OpStor = "stor"
	OpJump = "jump"
	OpJeq  = "jeq"
	OpPop  = "pop"
	OpJpos = "jpos"
)

// AddressError is the fault of an instruction that popped an address
// outside of the core.
type AddressError struct {
	Op      string // operation that consumed the address
	Address byte   // offending address as unsigned byte
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s address out of range", e.Op)
}

// Unwrap returns ErrAddressOutOfRange.
func (e *AddressError) Unwrap() error {
	return ErrAddressOutOfRange
}
