// Package mark builds payload bit marks for colormark's payload
// embedding: arbitrary bytes or bits, optionally protected by an
// error-correcting code and passphrase encryption, exposed through the
// bit-level interfaces the embedder consumes.
package mark

import (
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/colormark"
	"github.com/yyyoichi/colormark/internal/bitpack"
)

var (
	_ colormark.EmbedMark   = (*Mark64)(nil)
	_ colormark.ExtractMark = (*Mark64)(nil)
)

// Mark64 is a payload mark backed by uint64 words. An embedding-side
// mark carries the encoded bits; an extraction-side mark (NewExtract)
// carries only the expected shape and decodes bits recovered from an
// image.
type Mark64 struct {
	size    int // payload bits before encryption and ECC
	c       codec
	encoded []bool
}

// New64 builds an embedding-side mark from the first size bits of data.
// By default the mark is protected with the Golay code and a seeded
// shuffle; options change the encoding behavior.
func New64(data []uint64, size int, opts ...Option) (*Mark64, error) {
	if max := len(data) * 64; size > max {
		size = max
	}
	c := newCodec(opts...)
	r := bitstream.NewBitReader(data, 0, 0)
	plain := make([]bool, size)
	for i := range plain {
		plain[i], _ = r.ReadBitAt(i)
	}
	encoded, err := c.encode(plain)
	if err != nil {
		return nil, err
	}
	return &Mark64{size: size, c: c, encoded: encoded}, nil
}

// NewExtract builds an extraction-side mark describing a payload of
// size bits encoded with the given options. It must match the options
// the embedded mark was built with.
func NewExtract(size int, opts ...Option) *Mark64 {
	return &Mark64{size: size, c: newCodec(opts...)}
}

// GetBit returns the encoded bit at the given position as a float64.
// Positions past the mark length wrap around.
func (m *Mark64) GetBit(at int) float64 {
	if m.encoded[at%len(m.encoded)] {
		return 1
	}
	return 0
}

// Len returns the number of encoded bits the mark occupies in an image.
func (m *Mark64) Len() int {
	if m.encoded != nil {
		return len(m.encoded)
	}
	return m.c.encodedLen(m.size)
}

// Size returns the payload length in bits, before encryption and ECC.
func (m *Mark64) Size() int { return m.size }

// NewDecoder wraps bits recovered from an image in a decoder that
// reverses the mark's ECC and encryption.
func (m *Mark64) NewDecoder(bits []bool) colormark.MarkDecoder {
	return &decoder{size: m.size, c: m.c, bits: bits}
}

type decoder struct {
	size int
	c    codec
	bits []bool
}

func (d *decoder) DecodeToBytes() ([]byte, error) {
	raw, err := d.c.decode(d.bits, d.size)
	if err != nil {
		return nil, err
	}
	return raw[:d.size/8], nil
}

func (d *decoder) DecodeToString() (string, error) {
	b, err := d.DecodeToBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) DecodeToBools() ([]bool, error) {
	raw, err := d.c.decode(d.bits, d.size)
	if err != nil {
		return nil, err
	}
	return bitpack.BytesToBools(raw)[:d.size], nil
}
