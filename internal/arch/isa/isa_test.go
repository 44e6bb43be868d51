package isa

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/acc"
	"github.com/retroenv/trivium/internal/arch/lean"
)

func TestForVariant(t *testing.T) {
	set, err := ForVariant(arch.Acc)
	assert.NoError(t, err)
	assert.Equal(t, arch.Acc, set.Variant())
	assert.Equal(t, 12, len(set.Instructions()))

	ins, ok := set.Opcode(acc.Stor)
	assert.True(t, ok)
	assert.Equal(t, "stor", ins.Name)

	set, err = ForVariant(arch.Lean)
	assert.NoError(t, err)
	assert.Equal(t, arch.Lean, set.Variant())
	assert.Equal(t, 10, len(set.Instructions()))

	ins, ok = set.Instruction("jpos")
	assert.True(t, ok)
	assert.Equal(t, lean.Jpos, ins.Opcode)

	_, err = ForVariant("chip8")
	assert.Error(t, err)
}

func TestInstructionSets_Terminal(t *testing.T) {
	for _, variant := range arch.Variants {
		set, err := ForVariant(variant)
		assert.NoError(t, err)

		ins, ok := set.Instruction("halt")
		assert.True(t, ok)
		assert.True(t, ins.Terminal)
		assert.Equal(t, byte(0xff), ins.Opcode)

		ins, ok = set.Instruction("noop")
		assert.True(t, ok)
		assert.False(t, ins.Terminal)
		assert.Equal(t, byte(0x00), ins.Opcode)
	}
}
