package vm

import (
	"fmt"
	"io"

	"github.com/retroenv/trivium/internal/stack"
)

const bytesPerRow = 16

// dumper writes the dump lines and keeps the first write error.
type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// bytes writes the values, marking the value at index mark with brackets.
func (d *dumper) bytes(values []byte, mark int, rowPrefix string) {
	for i, b := range values {
		if i%bytesPerRow == 0 {
			d.printf("\n%s", rowPrefix)
		}
		if i == mark {
			d.printf("[%02x]", b)
		} else {
			d.printf(" %02x ", b)
		}
	}
}

func (d *dumper) state(s *State) {
	d.printf(".dump: -------\n")
	d.printf(".....: pc %8d", s.PC)
	d.bytes(s.Core[:], int(s.PC), ".....: core  ")
	d.stack(&s.Data, ".....: stack ")
}

func (d *dumper) stack(st *stack.Stack, rowPrefix string) {
	slots := st.Slots()
	d.bytes(slots[:], st.Top(), rowPrefix)
}

// Dump writes the program counter, the core and both stacks in hex.
// The byte at the program counter and the stack tops are bracketed.
func (m *Machine) Dump(w io.Writer) error {
	d := &dumper{w: w}
	d.state(&m.State)
	d.stack(&m.Return, ".....: rstk  ")
	d.printf("\n.....: acc   %02x\n", byte(m.Acc))
	return d.err
}

// Dump writes the program counter, the core and the data stack in hex.
// The byte at the program counter and the stack top are bracketed.
func (m *Lean) Dump(w io.Writer) error {
	d := &dumper{w: w}
	d.state(&m.State)
	d.printf("\n")
	return d.err
}
