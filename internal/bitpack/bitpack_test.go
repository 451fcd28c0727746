package bitpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToBools(t *testing.T) {
	got := BytesToBools([]byte{0b10110000})
	assert.Equal(t, []bool{true, false, true, true, false, false, false, false}, got)
	assert.Empty(t, BytesToBools(nil))
}

func TestBoolsToBytes(t *testing.T) {
	t.Run("exact_byte", func(t *testing.T) {
		bits := []bool{true, false, true, true, false, false, false, false}
		assert.Equal(t, []byte{0b10110000}, BoolsToBytes(bits))
	})
	t.Run("zero_padded", func(t *testing.T) {
		// trailing bits pad with zeros to the next byte
		assert.Equal(t, []byte{0b11000000}, BoolsToBytes([]bool{true, true}))
	})
}

func TestRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xff, 0x5a, 0xa5, 0x12}
	assert.Equal(t, data, BoolsToBytes(BytesToBools(data)))
}
