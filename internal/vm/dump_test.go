package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/trivium/internal/arch/acc"
)

func zeroRow(prefix string, mark bool) string {
	if mark {
		return "\n" + prefix + "[00]" + strings.Repeat(" 00 ", 15)
	}
	return "\n" + prefix + strings.Repeat(" 00 ", 16)
}

func TestMachine_Dump(t *testing.T) {
	m := New()
	var buf bytes.Buffer
	assert.NoError(t, m.Dump(&buf))

	expected := ".dump: -------\n" +
		".....: pc        0" +
		zeroRow(".....: core  ", true) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: stack ", true) +
		zeroRow(".....: rstk  ", true) +
		"\n.....: acc   00\n"
	assert.Equal(t, expected, buf.String())
}

func TestMachine_DumpMarksPosition(t *testing.T) {
	m := New()
	m.Core[0] = acc.Push
	m.Acc = -1
	assert.True(t, m.Step())

	var buf bytes.Buffer
	assert.NoError(t, m.Dump(&buf))
	out := buf.String()

	assert.Contains(t, out, ".....: pc        1")
	assert.Contains(t, out, ".....: core   03 [00]")
	assert.Contains(t, out, ".....: stack  00 [ff]")
	assert.Contains(t, out, ".....: acc   ff")
}

func TestLean_Dump(t *testing.T) {
	m := NewLean()
	m.PC = CoreSize

	var buf bytes.Buffer
	assert.NoError(t, m.Dump(&buf))

	expected := ".dump: -------\n" +
		".....: pc       64" +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: core  ", false) +
		zeroRow(".....: stack ", true) +
		"\n"
	assert.Equal(t, expected, buf.String())
	assert.False(t, strings.Contains(buf.String(), "rstk"))
}
