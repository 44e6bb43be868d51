package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/trivium/internal/arch/lean"
)

// constant returns the instructions that replace the top of stack with value,
// most significant bit first.
func constant(value byte) []byte {
	code := make([]byte, 0, 8)
	for bit := 7; bit >= 0; bit-- {
		if value&(1<<bit) != 0 {
			code = append(code, lean.One)
		} else {
			code = append(code, lean.Zero)
		}
	}
	return code
}

func TestLean_ZeroCore(t *testing.T) {
	m := NewLean()
	result := m.Run()

	assert.Equal(t, StatusPanic, result.Status)
	assert.Equal(t, "program counter out of range", result.Reason())
	assert.Equal(t, uint64(CoreSize), m.Steps)
}

func TestLean_InvalidInstruction(t *testing.T) {
	m := NewLean()
	m.Core[0] = 0x09

	result := m.Run()
	assert.Equal(t, StatusPanic, result.Status)
	assert.True(t, errors.Is(result.Fault, ErrInvalidInstruction))
}

func TestLean_ConstantSynthesis(t *testing.T) {
	m := NewLean()
	code := append([]byte{lean.Dup}, constant(5)...)
	code = append(code, lean.Halt)
	copy(m.Core[:], code)
	m.Data.Replace(0xff)

	result := m.Run()
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, 1, m.Data.Top())
	assert.Equal(t, byte(5), m.Data.Peek())
	slots := m.Data.Slots()
	assert.Equal(t, byte(0xff), slots[0])
}

func TestLean_LoadInPlace(t *testing.T) {
	m := NewLean()
	m.Core[0] = lean.Load
	m.Core[10] = 0x42
	m.Data.Push(10)

	assert.True(t, m.Step())
	assert.Equal(t, 1, m.Data.Top())
	assert.Equal(t, byte(0x42), m.Data.Peek())
}

func TestLean_PopStores(t *testing.T) {
	m := NewLean()
	m.Core[0] = lean.Pop
	m.Data.Push(20) // address
	m.Data.Push(7)  // value

	assert.True(t, m.Step())
	assert.Equal(t, byte(7), m.Core[20])
	assert.Equal(t, 0, m.Data.Top())
}

func TestLean_Jpos(t *testing.T) {
	tests := []struct {
		name       string
		test       byte
		expectedPC uint
	}{
		{"taken on zero", 0, 30},
		{"taken on positive", 0x7f, 30},
		{"not taken on negative", 0x80, 1},
		{"not taken on minus one", 0xff, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLean()
			m.Core[0] = lean.Jpos
			m.Data.Push(tt.test)
			m.Data.Push(30)

			assert.True(t, m.Step())
			assert.Equal(t, tt.expectedPC, m.PC)
			assert.Equal(t, 0, m.Data.Top())
		})
	}
}

func TestLean_AddressBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		op     byte
		setup  func(m *Lean, address byte)
		reason string
	}{
		{
			name: "load",
			op:   lean.Load,
			setup: func(m *Lean, address byte) {
				m.Data.Push(address)
			},
			reason: "load address out of range",
		},
		{
			name: "pop",
			op:   lean.Pop,
			setup: func(m *Lean, address byte) {
				m.Data.Push(address)
				m.Data.Push(1)
			},
			reason: "pop address out of range",
		},
		{
			name: "jpos",
			op:   lean.Jpos,
			setup: func(m *Lean, address byte) {
				m.Data.Push(0)
				m.Data.Push(address)
			},
			reason: "jpos address out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLean()
			m.Core[0] = tt.op
			tt.setup(m, CoreSize-1)
			assert.True(t, m.Step())

			m = NewLean()
			m.Core[0] = tt.op
			tt.setup(m, CoreSize)
			assert.False(t, m.Step())
			assert.Equal(t, tt.reason, m.Result().Reason())
			assert.True(t, errors.Is(m.Result().Fault, ErrAddressOutOfRange))
		})
	}
}

func TestLean_Program(t *testing.T) {
	// store 3+4 at address 40
	var code []byte
	code = append(code, lean.Dup)
	code = append(code, constant(40)...)
	code = append(code, lean.Dup)
	code = append(code, constant(3)...)
	code = append(code, lean.Dup)
	code = append(code, constant(4)...)
	code = append(code, lean.Add, lean.Pop, lean.Halt)

	m := NewLean()
	copy(m.Core[:], code)

	result := m.Run()
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, byte(7), m.Core[40])
	assert.Equal(t, 0, m.Data.Top())
	assert.Equal(t, uint64(len(code)), m.Steps)
}
