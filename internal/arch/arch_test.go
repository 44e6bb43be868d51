package arch

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestVariantFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Variant
		wantErr  bool
	}{
		{"empty", "", "", false},
		{"acc", "acc", Acc, false},
		{"lean upper case", "LEAN", Lean, false},
		{"surrounding space", " acc ", Acc, false},
		{"unknown", "chip8", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant, err := VariantFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, variant)
		})
	}
}

func TestInstructionSet(t *testing.T) {
	nop := &Instruction{Name: "nop", Opcode: 0x00}
	hlt := &Instruction{Name: "hlt", Opcode: 0xff, Terminal: true}
	set := NewInstructionSet(Acc, hlt, nop)

	assert.Equal(t, Acc, set.Variant())

	ins, ok := set.Opcode(0xff)
	assert.True(t, ok)
	assert.Equal(t, "hlt", ins.Name)

	_, ok = set.Opcode(0x01)
	assert.False(t, ok)

	ins, ok = set.Instruction("NOP")
	assert.True(t, ok)
	assert.Equal(t, byte(0x00), ins.Opcode)

	instructions := set.Instructions()
	assert.Equal(t, 2, len(instructions))
	assert.Equal(t, "nop", instructions[0].Name)
	assert.Equal(t, "hlt", instructions[1].Name)
}
