package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/options"
	"github.com/retroenv/trivium/internal/vm"
)

func TestProcessFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "prog.asm")
	assert.NoError(t, os.WriteFile(input, []byte("push\nhalt\n"), 0o600))

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: filepath.Join(dir, "report.txt"),
		},
		Flags: options.Flags{Disasm: true},
	}

	result, err := ProcessFile(context.Background(), logger, opts, options.NewDisassembler())
	assert.NoError(t, err)
	assert.Equal(t, vm.StatusOK, result.Status)

	data, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "  push")
	assert.Contains(t, report, ".info: status ok\n")
	assert.Contains(t, report, ".dump: -------\n")
}

func TestProcessFile_InvalidOutput(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Parameters: options.Parameters{Output: filepath.Join(t.TempDir(), "missing", "report.txt")},
	}

	_, err := ProcessFile(context.Background(), logger, opts, options.NewDisassembler())
	assert.ErrorContains(t, err, "creating writer")
}

func TestCreateWriter_Stdout(t *testing.T) {
	writer, err := createWriter(options.Program{})
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, "trivium", options.Program{}, "1.0.0", "abcdef0123", "2026-01-01")
	PrintBanner(logger, "trivium", options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
