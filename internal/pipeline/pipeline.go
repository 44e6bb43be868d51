// Package pipeline orchestrates the stages of a machine run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/arch/isa"
	"github.com/retroenv/trivium/internal/detector"
	"github.com/retroenv/trivium/internal/disasm"
	"github.com/retroenv/trivium/internal/loader"
	"github.com/retroenv/trivium/internal/options"
	"github.com/retroenv/trivium/internal/program"
	"github.com/retroenv/trivium/internal/verification"
	"github.com/retroenv/trivium/internal/vm"
)

// Pipeline orchestrates the complete workflow of loading, listing and
// running a program.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline and writes the listing, the result and
// the machine dump to writer. A machine fault is not an error, it is
// reported in the returned result.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	writer io.Writer) (vm.Result, error) {

	if _, err := arch.VariantFromString(opts.Variant); err != nil {
		return vm.Result{}, fmt.Errorf("invalid variant option: %w", err)
	}
	variant := p.detector.Detect(opts)

	app, err := p.loader.Load(opts, variant)
	if err != nil {
		return vm.Result{}, fmt.Errorf("loading program: %w", err)
	}
	p.printInfo(opts, app)

	if opts.Disasm || opts.AssembleTest {
		if err := p.processListing(opts, disasmOpts, app, writer); err != nil {
			return vm.Result{}, err
		}
	}

	return p.ExecuteProgram(ctx, opts, app, writer)
}

// ExecuteProgram runs an already loaded program on a new machine of the
// program variant and reports the result.
func (p *Pipeline) ExecuteProgram(ctx context.Context, opts options.Program, app *program.Program,
	writer io.Writer) (vm.Result, error) {

	cpu, err := vm.NewForVariant(app.Variant)
	if err != nil {
		return vm.Result{}, fmt.Errorf("creating machine: %w", err)
	}
	if err := loader.Install(cpu.Memory(), app.Image()); err != nil {
		return vm.Result{}, fmt.Errorf("installing program: %w", err)
	}

	var result vm.Result
	if opts.Trace {
		result, err = p.trace(ctx, cpu, app)
	} else {
		result = cpu.Run()
	}
	if err != nil {
		return vm.Result{}, err
	}

	p.logger.Debug("Machine stopped",
		log.Stringer("status", result.Status),
		log.String("reason", result.Reason()),
		log.Int("steps", int(cpu.Snapshot().Steps)))

	if err := writeReport(writer, cpu, result, opts.NoDump); err != nil {
		return vm.Result{}, err
	}
	return result, nil
}

// processListing writes the listing of the program if requested and
// verifies that it reassembles to the program image.
func (p *Pipeline) processListing(opts options.Program, disasmOpts options.Disassembler,
	app *program.Program, writer io.Writer) error {

	dis, err := disasm.New(p.logger, app, disasmOpts)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	var listing bytes.Buffer
	if _, err := dis.Process(&listing); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if opts.Disasm {
		if _, err := writer.Write(listing.Bytes()); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if opts.AssembleTest {
		if err := verification.VerifyOutput(p.logger, app, listing.Bytes()); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}
	return nil
}

// trace steps the machine and logs every instruction before it executes.
// The context is checked between steps so that endless programs can be
// interrupted.
func (p *Pipeline) trace(ctx context.Context, cpu vm.CPU, app *program.Program) (vm.Result, error) {
	instructions, err := isa.ForVariant(app.Variant)
	if err != nil {
		return vm.Result{}, fmt.Errorf("resolving instruction set: %w", err)
	}
	labels := app.Labels()

	for cpu.Running() {
		if err := ctx.Err(); err != nil {
			return vm.Result{}, fmt.Errorf("tracing interrupted: %w", err)
		}

		state := cpu.Snapshot()
		name, label := describe(state, instructions, labels)
		p.logger.Info("Step",
			log.Hex("pc", state.PC),
			log.String("label", label),
			log.String("instruction", name),
			log.Int("top", state.Data.Top()),
			log.Hex("value", state.Data.Peek()))

		cpu.Step()
	}
	return cpu.Result(), nil
}

// describe returns the mnemonic and the label of the instruction at the
// program counter of the state.
func describe(state vm.State, instructions *arch.InstructionSet, labels map[byte]string) (string, string) {
	if state.PC >= vm.CoreSize {
		return "-", ""
	}
	label := labels[byte(state.PC)]
	ins, ok := instructions.Opcode(state.Core[state.PC])
	if !ok {
		return "invalid", label
	}
	return ins.Name, label
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, app *program.Program) {
	if opts.Quiet {
		return
	}

	file := opts.Input
	if file == "" {
		file = "<zero core>"
	}
	p.logger.Info("Running program",
		log.String("file", file),
		log.Stringer("variant", app.Variant),
		log.Int("size", len(app.Offsets)),
		log.Hex("crc32", app.Checksum()))
}

// writeReport writes the result line followed by the machine dump.
func writeReport(writer io.Writer, cpu vm.CPU, result vm.Result, noDump bool) error {
	line := ".info: status " + result.Status.String()
	if reason := result.Reason(); reason != "" {
		line += " " + reason
	}
	if _, err := fmt.Fprintln(writer, line); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if noDump {
		return nil
	}
	if err := cpu.Dump(writer); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}
