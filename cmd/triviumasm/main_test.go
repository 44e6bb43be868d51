package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/acc"
	"github.com/retroenv/trivium/internal/arch/lean"
)

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "prog.asm")
	assert.NoError(t, os.WriteFile(source, []byte("start: push\nhalt\n"), 0o600))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-q", source})
	assert.NoError(t, cmd.Execute())

	image, err := os.ReadFile(filepath.Join(dir, "prog.bin"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{acc.Push, acc.Halt}, image)
}

func TestRootCommand_OutputAndVariant(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "prog.asm")
	output := filepath.Join(dir, "out.img")
	assert.NoError(t, os.WriteFile(source, []byte("one\nhalt\n"), 0o600))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-q", "--variant", "lean", "-o", output, source})
	assert.NoError(t, cmd.Execute())

	image, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, []byte{lean.One, lean.Halt}, image)
}

func TestRootCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "prog.asm")
	assert.NoError(t, os.WriteFile(source, []byte("bogus\n"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"-q"}},
		{"invalid source", []string{"-q", source}},
		{"missing source", []string{"-q", filepath.Join(dir, "missing.asm")}},
		{"unsupported variant", []string{"-q", "--variant", "z80", source}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestSourceVariant(t *testing.T) {
	variant, err := sourceVariant("", "prog.LASM")
	assert.NoError(t, err)
	assert.Equal(t, arch.Lean, variant)

	variant, err = sourceVariant("", "prog.asm")
	assert.NoError(t, err)
	assert.Equal(t, arch.Acc, variant)

	variant, err = sourceVariant("lean", "prog.asm")
	assert.NoError(t, err)
	assert.Equal(t, arch.Lean, variant)
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "dir/prog.bin", outputFilename("dir/prog.asm"))
	assert.Equal(t, "prog.bin", outputFilename("prog"))
}
