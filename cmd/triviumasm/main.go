// Package main implements the assembler that converts trivium source files
// into raw core images.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/assembler"
	"github.com/retroenv/trivium/internal/config"
	"github.com/retroenv/trivium/internal/options"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	output  string
	variant string
	quiet   bool
	debug   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts optionFlags

	cmd := &cobra.Command{
		Use:          "triviumasm [flags] <source file>",
		Short:        "Assemble a trivium source file into a core image",
		Version:      buildinfo.Version(version, commit, date),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.CreateLogger(options.Flags{Debug: opts.debug, Quiet: opts.quiet})
			return assembleFile(logger, opts, args[0])
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "name of the output image file, the source name with .bin extension if not given")
	flags.StringVar(&opts.variant, "variant", "", "instruction set variant (acc/lean) - if not auto-detected from file extension")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "perform operations quietly")
	flags.BoolVar(&opts.debug, "debug", false, "enable debugging options for extended logging")
	return cmd
}

func assembleFile(logger *log.Logger, opts optionFlags, input string) error {
	variant, err := sourceVariant(opts.variant, input)
	if err != nil {
		return err
	}

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", input, err)
	}
	defer func() { _ = file.Close() }()

	asm, err := assembler.New(variant)
	if err != nil {
		return fmt.Errorf("creating assembler: %w", err)
	}
	app, err := asm.Assemble(file)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", input, err)
	}

	for _, name := range asm.Unused() {
		logger.Warn("Label is never referenced", log.String("label", name))
	}

	output := opts.output
	if output == "" {
		output = outputFilename(input)
	}
	if err := writeImage(output, app.Image()); err != nil {
		return err
	}

	logger.Info("Assembled program",
		log.String("file", output),
		log.Stringer("variant", variant),
		log.Int("size", len(app.Offsets)),
		log.Hex("crc32", app.Checksum()))
	return nil
}

// sourceVariant returns the variant of the option, or the lean variant for
// .lasm source files and the acc variant for all other files.
func sourceVariant(option, input string) (arch.Variant, error) {
	variant, err := arch.VariantFromString(option)
	if err != nil {
		return "", err
	}
	if variant != "" {
		return variant, nil
	}
	if strings.EqualFold(filepath.Ext(input), ".lasm") {
		return arch.Lean, nil
	}
	return arch.Acc, nil
}

// outputFilename generates the output filename for a given source file
func outputFilename(input string) string {
	ext := filepath.Ext(input)
	return input[:len(input)-len(ext)] + ".bin"
}

func writeImage(name string, image []byte) error {
	if err := os.WriteFile(name, image, 0o644); err != nil {
		return fmt.Errorf("writing output file %s: %w", name, err)
	}
	return nil
}
