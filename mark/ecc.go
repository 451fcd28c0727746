package mark

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/klauspost/reedsolomon"
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/colormark/internal/bitpack"
	"github.com/yyyoichi/golay"
)

var ErrDamagedMark = errors.New("mark too damaged to decode")

type factory interface {
	encode(bits []bool) []bool
	decode(bits []bool, plainBits int) ([]byte, error)
	encodedLen(plainBits int) int
}

func bytesOf(bits []bool) []byte { return bitpack.BoolsToBytes(bits) }
func boolsOf(b []byte) []bool    { return bitpack.BytesToBools(b) }

var _ factory = (*shuffledgolay)(nil)

type shuffledgolay int64

func (sg shuffledgolay) encode(bits []bool) []bool {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range bits {
		w.WriteBool(b)
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(w.Data(), w.Bits())
	n := enc.Bits()

	index := sg.permutation(n)
	r := bitstream.NewBitReader(encoded, 0, 0)
	out := make([]bool, n)
	for i := range out {
		out[i], _ = r.ReadBitAt(index[i])
	}
	return out
}

func (sg shuffledgolay) decode(bits []bool, plainBits int) ([]byte, error) {
	// reverse shuffle: same permutation, applied inversely
	index := sg.permutation(len(bits))
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i, b := range bits {
		w.WriteBitAt(index[i], b)
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDamagedMark, err)
	}

	need := (plainBits + 7) / 8
	r := bitstream.NewBitReader(decoded, 0, 0)
	out := make([]bool, need*8)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return bytesOf(out), nil
}

func (sg shuffledgolay) encodedLen(plainBits int) int {
	return golay.EncodedBits(plainBits)
}

func (sg shuffledgolay) permutation(length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(int64(sg)))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

var _ factory = (*withoutECC)(nil)

type withoutECC struct{}

func (withoutECC) encode(bits []bool) []bool {
	out := make([]bool, len(bits))
	copy(out, bits)
	return out
}

func (withoutECC) decode(bits []bool, plainBits int) ([]byte, error) {
	if len(bits) < plainBits {
		return nil, fmt.Errorf("%w: got %d of %d bits", ErrDamagedMark, len(bits), plainBits)
	}
	return bytesOf(bits[:plainBits]), nil
}

func (withoutECC) encodedLen(plainBits int) int { return plainBits }

var _ factory = (*rsFraming)(nil)

// rsFraming wraps the payload in Reed-Solomon shards with a length
// header, so a decoder can verify integrity and rebuild the payload
// when parity still checks out.
type rsFraming struct {
	dataShards, parityShards int
}

func (f rsFraming) encode(bits []bool) []bool {
	payload := bytesOf(bits)
	framed := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(framed[:4], uint32(len(payload)))
	copy(framed[4:], payload)

	enc, err := reedsolomon.New(f.dataShards, f.parityShards)
	if err != nil {
		// shard counts are sanitized by the option
		panic(err)
	}
	shards, err := enc.Split(framed)
	if err != nil {
		panic(err)
	}
	if err := enc.Encode(shards); err != nil {
		panic(err)
	}

	var out []byte
	for _, shard := range shards {
		out = append(out, shard...)
	}
	return boolsOf(out)
}

func (f rsFraming) decode(bits []bool, plainBits int) ([]byte, error) {
	data := bytesOf(bits)
	total := f.dataShards + f.parityShards
	shardLen := f.shardLen(plainBits)
	if len(data) < shardLen*total {
		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrDamagedMark, len(data), shardLen*total)
	}

	shards := make([][]byte, total)
	for i := range shards {
		shards[i] = data[i*shardLen : (i+1)*shardLen]
	}
	enc, err := reedsolomon.New(f.dataShards, f.parityShards)
	if err != nil {
		return nil, err
	}
	if ok, _ := enc.Verify(shards); !ok {
		if err := enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDamagedMark, err)
		}
		if ok, _ := enc.Verify(shards); !ok {
			return nil, ErrDamagedMark
		}
	}

	var joined []byte
	for i := 0; i < f.dataShards; i++ {
		joined = append(joined, shards[i]...)
	}
	length := binary.BigEndian.Uint32(joined[:4])
	need := (plainBits + 7) / 8
	if int(length) < need || len(joined) < 4+need {
		return nil, fmt.Errorf("%w: recovered %d of %d payload bytes", ErrDamagedMark, length, need)
	}
	return joined[4 : 4+need], nil
}

func (f rsFraming) encodedLen(plainBits int) int {
	return f.shardLen(plainBits) * (f.dataShards + f.parityShards) * 8
}

func (f rsFraming) shardLen(plainBits int) int {
	framed := (plainBits+7)/8 + 4
	return (framed + f.dataShards - 1) / f.dataShards
}
