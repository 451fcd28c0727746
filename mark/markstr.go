package mark

import "github.com/yyyoichi/bitstream-go"

// NewString builds an embedding-side mark from the bytes of data.
func NewString(data string, opts ...Option) (*Mark64, error) {
	return NewBytes([]byte(data), opts...)
}

// NewBytes builds an embedding-side mark from raw bytes.
func NewBytes(data []byte, opts ...Option) (*Mark64, error) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range data {
		w.Write8(0, 8, v)
	}
	return New64(w.Data(), w.Bits(), opts...)
}

// NewBools builds an embedding-side mark from individual bits.
func NewBools(bits []bool, opts ...Option) (*Mark64, error) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range bits {
		w.WriteBool(b)
	}
	return New64(w.Data(), len(bits), opts...)
}
