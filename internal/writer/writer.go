// Package writer implements the listing writing functionality.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/trivium/internal/program"
)

const (
	dataBytesPerLine = 16
	indent           = "  "
)

type lineWriterFunc func(line string, byteCount int) error

// Writer writes a decoded program as a listing that the assembler accepts.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output offsets in comments
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// ProcessProgram writes all offsets up to endIndex with their labels and comments.
// Offsets need to be decoded, code offsets carry their mnemonic in Code.
func (w Writer) ProcessProgram(endIndex int) error {
	var previousLineWasCode bool

	for i := 0; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		isCode := offset.IsType(program.CodeOffset)
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		adjustment, err := w.writeOffset(i, endIndex, offset)
		if err != nil {
			return err
		}
		i += adjustment
	}
	return nil
}

// WriteCommentHeader writes the variant and the CRC32 checksum as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; Variant: %s\n", w.app.Variant); err != nil {
		return fmt.Errorf("writing variant: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n\n", w.app.Checksum()); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		if _, err := fmt.Fprintf(buf, "%s.byte ", indent); err != nil {
			return fmt.Errorf("writing data prefix: %w", err)
		}

		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

func (w Writer) writeOffset(index, endIndex int, offset program.Offset) (int, error) {
	if offset.IsType(program.AddressReference) {
		line := fmt.Sprintf("%s.byte %s", indent, offset.Reference)
		if err := w.writeLine(line, w.comment(index, offset, false)); err != nil {
			return 0, fmt.Errorf("writing address reference: %w", err)
		}
		return 0, nil
	}

	if offset.IsType(program.DataOffset) {
		count, err := w.bundleDataWrites(index, endIndex)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return count - 1, nil
		}
		return 0, nil
	}

	if err := w.writeLine(indent+offset.Code, w.comment(index, offset, true)); err != nil {
		return 0, fmt.Errorf("writing code line: %w", err)
	}
	return 0, nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeLine(line, comment string) error {
	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// comment returns the comment of an offset, prefixed by the enabled offset
// and hex comments.
func (w Writer) comment(index int, offset program.Offset, hex bool) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%02X", index))
	}
	if hex && w.options.HexComments {
		parts = append(parts, fmt.Sprintf("%02X", offset.Value))
	}
	if offset.Comment != "" {
		parts = append(parts, offset.Comment)
	}
	return strings.Join(parts, "  ")
}

// bundleDataWrites creates bundled writes of the data bytes starting at startIndex.
func (w Writer) bundleDataWrites(startIndex, endIndex int) (int, error) {
	data := w.getData(startIndex, endIndex)
	if len(data) == 0 {
		return 0, nil
	}

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		if err := w.writeLine(line, w.comment(currentIndex, w.app.Offsets[currentIndex], false)); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}

	return len(data), nil
}

// getData returns the data bytes following startIndex up to the next label,
// code offset, address reference or commented offset.
func (w Writer) getData(startIndex, endIndex int) []byte {
	var data []byte

	for i := startIndex; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if !offset.IsType(program.DataOffset) || offset.IsType(program.AddressReference) {
			break
		}
		if i > startIndex && (offset.Label != "" || offset.Comment != "") {
			break
		}

		data = append(data, offset.Value)
	}

	return data
}
