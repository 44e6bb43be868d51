// Package program represents a core image together with the optional
// source information recorded by the assembler.
package program

import (
	"hash/crc32"

	"github.com/retroenv/trivium/internal/arch"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Value byte
	Type  OffsetType

	Label     string // name of the label defined at this offset
	Reference string // name of the label whose address the data byte holds
	Code      string // asm output of this instruction
	Comment   string
}

// Program defines a core image of a variant.
type Program struct {
	Variant arch.Variant
	Offsets []Offset
}

// New creates a new program for the given image. All offsets are of unknown type.
func New(variant arch.Variant, image []byte) *Program {
	p := &Program{
		Variant: variant,
		Offsets: make([]Offset, len(image)),
	}
	for i, b := range image {
		p.Offsets[i].Value = b
	}
	return p
}

// Image returns the bytes of the program.
func (p *Program) Image() []byte {
	image := make([]byte, len(p.Offsets))
	for i, offset := range p.Offsets {
		image[i] = offset.Value
	}
	return image
}

// Checksum returns the CRC32 checksum of the image.
func (p *Program) Checksum() uint32 {
	return crc32.ChecksumIEEE(p.Image())
}

// Labels returns the label names by address.
func (p *Program) Labels() map[byte]string {
	labels := map[byte]string{}
	for i, offset := range p.Offsets {
		if offset.Label != "" {
			labels[byte(i)] = offset.Label
		}
	}
	return labels
}
