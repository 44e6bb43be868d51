// Package disasm converts a program image into a listing of the assembler
// source format.
//
// Every instruction is a single byte, so the image is decoded linearly:
// bytes that encode an instruction of the variant become code, all other
// bytes and bytes the assembler emitted as .byte data become data.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/isa"
	"github.com/retroenv/trivium/internal/options"
	"github.com/retroenv/trivium/internal/program"
	"github.com/retroenv/trivium/internal/writer"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger       *log.Logger
	app          *program.Program
	instructions *arch.InstructionSet
	options      options.Disassembler
}

// New creates a disassembler for the given program. The program is not
// modified, decoding works on a copy of its offsets.
func New(logger *log.Logger, app *program.Program, options options.Disassembler) (*Disasm, error) {
	instructions, err := isa.ForVariant(app.Variant)
	if err != nil {
		return nil, fmt.Errorf("resolving instruction set: %w", err)
	}

	size := len(app.Offsets)
	if options.ZeroBytes {
		size = max(size, arch.CoreSize)
	}
	decoded := &program.Program{
		Variant: app.Variant,
		Offsets: make([]program.Offset, size),
	}
	copy(decoded.Offsets, app.Offsets)

	return &Disasm{
		logger:       logger,
		app:          decoded,
		instructions: instructions,
		options:      options,
	}, nil
}

// Process decodes the program and writes the listing to w.
// It returns the decoded program.
func (dis *Disasm) Process(w io.Writer) (*program.Program, error) {
	codeCount := dis.decode()
	endIndex := dis.endIndex()

	dis.logger.Debug("Disassembling program",
		log.String("variant", dis.app.Variant.String()),
		log.Int("size", len(dis.app.Offsets)),
		log.Int("code", codeCount),
		log.Int("end", endIndex))

	wr := writer.New(dis.app, w, writer.Options{
		HexComments:    dis.options.HexComments,
		OffsetComments: dis.options.OffsetComments,
	})
	if err := wr.WriteCommentHeader(); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := wr.ProcessProgram(endIndex); err != nil {
		return nil, fmt.Errorf("writing program: %w", err)
	}
	return dis.app, nil
}

// decode sets the type and code of every offset and returns the number of
// code offsets.
func (dis *Disasm) decode() int {
	var codeCount int
	for i := range dis.app.Offsets {
		offset := &dis.app.Offsets[i]
		if offset.IsType(program.DataOffset) {
			continue // was set by the assembler
		}

		ins, ok := dis.instructions.Opcode(offset.Value)
		if !ok {
			offset.ClearType(program.CodeOffset)
			offset.SetType(program.DataOffset)
			continue
		}
		offset.SetType(program.CodeOffset)
		offset.Code = ins.Name
		codeCount++
	}
	return codeCount
}

// endIndex returns the index after the last offset to output. Trailing zero
// bytes without a label are omitted unless requested, the assembler fills
// the rest of the core with zeros anyway.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.app.Offsets)
	}

	for i := len(dis.app.Offsets) - 1; i >= 0; i-- {
		offset := dis.app.Offsets[i]
		if offset.Value != 0 || offset.Label != "" || offset.Comment != "" {
			return i + 1
		}
	}
	return 0
}
