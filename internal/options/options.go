// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image or source file, empty runs the zero filled core
	Output string // report and listing output file, stdout if empty
}

// Flags contains behavior options.
type Flags struct {
	Variant      string // instruction set variant, auto-detected if empty
	Disasm       bool   // output a listing of the program before running it
	AssembleTest bool   // verify the listing by reassembling it
	Trace        bool   // log every executed instruction
	NoDump       bool   // do not output the machine state after the run
	Debug        bool
	Quiet        bool
}

// Program options of the machine driver.
type Program struct {
	Parameters
	Flags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool // output the trailing zero bytes of the core
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
