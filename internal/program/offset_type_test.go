package program

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOffset_SetType(t *testing.T) {
	offset := &Offset{}

	assert.False(t, offset.IsType(CodeOffset))
	offset.SetType(DataOffset)
	assert.True(t, offset.IsType(DataOffset))
	assert.False(t, offset.IsType(CodeOffset))

	offset.SetType(AddressReference)
	assert.True(t, offset.IsType(DataOffset))
	assert.True(t, offset.IsType(AddressReference))
	assert.True(t, offset.IsType(CodeOffset|AddressReference))
}

func TestOffset_ClearType(t *testing.T) {
	offset := &Offset{}
	offset.SetType(DataOffset)
	offset.SetType(AddressReference)

	offset.ClearType(AddressReference)
	assert.False(t, offset.IsType(AddressReference))
	assert.True(t, offset.IsType(DataOffset))

	offset.ClearType(DataOffset)
	assert.Equal(t, UnknownOffset, offset.Type)
}
