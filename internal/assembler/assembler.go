// Package assembler translates the line oriented source format of a variant
// into a core image.
//
// Each line holds an optional label definition, followed by either a single
// mnemonic or a directive, followed by an optional comment:
//
//	start:  load        ; comment
//	        .byte 12, $ff, %101, -1, start
//	        .org 40
//
// Mnemonics are case insensitive. .byte values can be decimal, negative
// decimal, $hex, 0xhex, %binary or the name of a label which is replaced by
// its address. .org moves the location of the next emitted byte.
package assembler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/isa"
	"github.com/retroenv/trivium/internal/program"
)

// Errors reported by the assembler, wrapped in an *Error.
var (
	ErrSyntax             = errors.New("syntax error")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrDuplicateLabel     = errors.New("duplicate label")
	ErrUndefinedLabel     = errors.New("undefined label")
	ErrValueOutOfRange    = errors.New("value out of range")
	ErrImageTooLarge      = errors.New("program exceeds core size")
	ErrOverlap            = errors.New("offset already defined")
)

// Error is an assembler error of a source line.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

type fixup struct {
	offset int
	label  string
	line   int
}

type label struct {
	address int
	line    int
}

// Assembler assembles source code of a single variant.
type Assembler struct {
	variant      arch.Variant
	instructions *arch.InstructionSet

	offsets [arch.CoreSize]program.Offset
	written [arch.CoreSize]bool
	size    int // highest used offset + 1
	pc      int
	line    int

	labels     map[string]label
	referenced set.Set[string]
	fixups     []fixup
}

// New returns a new assembler for the given variant.
func New(variant arch.Variant) (*Assembler, error) {
	instructions, err := isa.ForVariant(variant)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		variant:      variant,
		instructions: instructions,
		labels:       map[string]label{},
		referenced:   set.New[string](),
	}, nil
}

// Assemble assembles the source read from r using a new assembler.
func Assemble(variant arch.Variant, r io.Reader) (*program.Program, error) {
	a, err := New(variant)
	if err != nil {
		return nil, err
	}
	return a.Assemble(r)
}

// Assemble reads the source from r and returns the assembled program.
// The image covers all offsets up to the highest emitted byte or label.
func (a *Assembler) Assemble(r io.Reader) (*program.Program, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		a.line++
		if err := a.parseLine(scanner.Text()); err != nil {
			return nil, &Error{Line: a.line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	if err := a.resolveFixups(); err != nil {
		return nil, err
	}

	app := &program.Program{
		Variant: a.variant,
		Offsets: make([]program.Offset, a.size),
	}
	copy(app.Offsets, a.offsets[:a.size])
	return app, nil
}

// Unused returns the sorted names of all labels that are defined but
// never referenced by a .byte value.
func (a *Assembler) Unused() []string {
	var unused []string
	for name := range a.labels {
		if !a.referenced.Contains(name) {
			unused = append(unused, name)
		}
	}
	slices.Sort(unused)
	return unused
}

func (a *Assembler) parseLine(line string) error {
	code, comment, _ := strings.Cut(line, ";")
	code = strings.TrimSpace(code)
	comment = strings.TrimSpace(comment)

	if name, rest, ok := strings.Cut(code, ":"); ok {
		if err := a.defineLabel(strings.TrimSpace(name)); err != nil {
			return err
		}
		code = strings.TrimSpace(rest)
	}
	if code == "" {
		return nil
	}

	if strings.HasPrefix(code, ".") {
		return a.parseDirective(code, comment)
	}

	fields := strings.Fields(code)
	if len(fields) != 1 {
		return fmt.Errorf("%w: unexpected operand '%s'", ErrSyntax, strings.Join(fields[1:], " "))
	}
	ins, ok := a.instructions.Instruction(fields[0])
	if !ok {
		return fmt.Errorf("%w '%s' for variant %s", ErrUnknownInstruction, fields[0], a.variant)
	}
	offset, err := a.emit(ins.Opcode, program.CodeOffset)
	if err != nil {
		return err
	}
	offset.Comment = comment
	return nil
}

func (a *Assembler) parseDirective(code, comment string) error {
	directive, args := code, ""
	if i := strings.IndexAny(code, " \t"); i >= 0 {
		directive, args = code[:i], strings.TrimSpace(code[i+1:])
	}

	switch strings.ToLower(directive) {
	case ".byte":
		return a.parseBytes(args, comment)

	case ".org":
		value, err := parseNumber(args)
		if err != nil {
			return err
		}
		if value < 0 {
			return fmt.Errorf("%w: origin %d", ErrValueOutOfRange, value)
		}
		if value >= arch.CoreSize {
			return fmt.Errorf("%w: origin %d", ErrImageTooLarge, value)
		}
		a.pc = value
		return nil

	default:
		return fmt.Errorf("%w: unknown directive '%s'", ErrSyntax, directive)
	}
}

func (a *Assembler) parseBytes(args, comment string) error {
	if args == "" {
		return fmt.Errorf("%w: missing .byte value", ErrSyntax)
	}

	for i, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)

		var (
			value int
			name  string
		)
		if isIdentifier(arg) {
			name = arg
		} else {
			var err error
			if value, err = parseNumber(arg); err != nil {
				return err
			}
			if value < -128 || value > 255 {
				return fmt.Errorf("%w: %d does not fit a byte", ErrValueOutOfRange, value)
			}
		}

		offset, err := a.emit(byte(value), program.DataOffset)
		if err != nil {
			return err
		}
		if name != "" {
			a.fixups = append(a.fixups, fixup{offset: a.pc - 1, label: name, line: a.line})
		}
		if i == 0 {
			offset.Comment = comment
		}
	}
	return nil
}

func (a *Assembler) defineLabel(name string) error {
	if !isIdentifier(name) {
		return fmt.Errorf("%w: invalid label name '%s'", ErrSyntax, name)
	}
	if previous, ok := a.labels[name]; ok {
		return fmt.Errorf("%w '%s', first defined in line %d", ErrDuplicateLabel, name, previous.line)
	}
	if a.pc >= arch.CoreSize {
		return fmt.Errorf("%w: label '%s' at %d", ErrImageTooLarge, name, a.pc)
	}

	a.labels[name] = label{address: a.pc, line: a.line}
	a.offsets[a.pc].Label = name
	a.size = max(a.size, a.pc+1)
	return nil
}

// emit writes a byte at the current location and advances it.
func (a *Assembler) emit(b byte, typ program.OffsetType) (*program.Offset, error) {
	if a.pc >= arch.CoreSize {
		return nil, ErrImageTooLarge
	}
	if a.written[a.pc] {
		return nil, fmt.Errorf("%w: $%02X", ErrOverlap, a.pc)
	}

	offset := &a.offsets[a.pc]
	offset.Value = b
	offset.SetType(typ)
	a.written[a.pc] = true
	a.pc++
	a.size = max(a.size, a.pc)
	return offset, nil
}

func (a *Assembler) resolveFixups() error {
	for _, fix := range a.fixups {
		target, ok := a.labels[fix.label]
		if !ok {
			return &Error{Line: fix.line, Err: fmt.Errorf("%w '%s'", ErrUndefinedLabel, fix.label)}
		}
		a.referenced.Add(fix.label)

		offset := &a.offsets[fix.offset]
		offset.Value = byte(target.address)
		offset.Reference = fix.label
		offset.SetType(program.AddressReference)
	}
	return nil
}

func parseNumber(s string) (int, error) {
	var (
		value int64
		err   error
	)
	switch {
	case strings.HasPrefix(s, "$"):
		value, err = strconv.ParseInt(s[1:], 16, 32)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		value, err = strconv.ParseInt(s[2:], 16, 32)
	case strings.HasPrefix(s, "%"):
		value, err = strconv.ParseInt(s[1:], 2, 32)
	default:
		value, err = strconv.ParseInt(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number '%s'", ErrSyntax, s)
	}
	return int(value), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
