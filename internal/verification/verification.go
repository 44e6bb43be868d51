// Package verification verifies that the generated listing recreates the input image.
package verification

import (
	"bytes"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/arch"
	"github.com/retroenv/trivium/internal/assembler"
	"github.com/retroenv/trivium/internal/program"
)

// VerifyOutput reassembles the listing and compares the result with the
// image of the program. Both images are compared as full cores, bytes that
// the listing omits are zero.
func VerifyOutput(logger *log.Logger, app *program.Program, listing []byte) error {
	reassembled, err := assembler.Assemble(app.Variant, bytes.NewReader(listing))
	if err != nil {
		return fmt.Errorf("reassembling listing: %w", err)
	}

	if err := checkBufferEqual(logger, coreImage(app.Image()), coreImage(reassembled.Image())); err != nil {
		return fmt.Errorf("core image mismatch: %w", err)
	}
	return nil
}

// coreImage returns the image padded with zeros to the core size.
func coreImage(image []byte) []byte {
	core := make([]byte, max(len(image), arch.CoreSize))
	copy(core, image)
	return core
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
