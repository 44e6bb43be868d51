// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/isa"
	"github.com/retroenv/trivium/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)
	disasmOptions := options.NewDisassembler()
	applyDisasmOptions := readDisasmOptionFlags(flags, &disasmOptions)

	if err := flags.Parse(arguments); err != nil {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: err.Error()}
	}
	applyDisasmOptions()

	args := flags.Args()
	if err := validateArgs(args); err != nil {
		return opts, options.Disassembler{}, err
	}
	if len(args) > 1 {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: "only one program file can be run"}
	}
	if len(args) == 1 {
		if opts.Input != "" {
			return opts, options.Disassembler{}, &UsageError{flags: flags, msg: "input file given as flag and argument"}
		}
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Disassembler{}, err
	}
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the defaults of all flags.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: trivium [options] [program file]\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Printf("\ninstructions:\n%s\n", instructionSummary())
}

// instructionSummary lists the mnemonics of every variant in opcode order.
func instructionSummary() string {
	buf := &strings.Builder{}
	for _, variant := range arch.Variants {
		instructions, err := isa.ForVariant(variant)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(instructions.Instructions()))
		for _, ins := range instructions.Instructions() {
			names = append(names, ins.Name)
		}
		fmt.Fprintf(buf, "  %-6s %s\n", variant, strings.Join(names, " "))
	}
	return buf.String()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	variant, err := arch.VariantFromString(opts.Variant)
	if err != nil {
		return fmt.Errorf("%w. Valid options: %s, %s", err, arch.Acc, arch.Lean)
	}
	opts.Variant = variant.String()

	// trace output is logged at info level, which quiet mode suppresses
	if opts.Quiet && opts.Trace && !opts.Debug {
		return &UsageError{msg: "trace and quiet can not be combined"}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the program file, .asm/.lasm files are assembled, other files are raw core images")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Variant, "variant", "", "instruction set variant (acc/lean) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a listing of the program before running it")
	flags.BoolVar(&opts.AssembleTest, "verify", false, "verify the listing by reassembling it and check if it matches the program")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.NoDump, "nodump", false, "do not output the machine state after the run")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// readDisasmOptionFlags registers the listing flags and returns a function
// that applies them to opts once the flags are parsed.
func readDisasmOptionFlags(flags *flag.FlagSet, opts *options.Disassembler) func() {
	var noHexComments, noOffsets bool
	flags.BoolVar(&noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the core")

	return func() {
		// Apply inverse logic for hex comments and offsets
		opts.HexComments = !noHexComments
		opts.OffsetComments = !noOffsets
	}
}
