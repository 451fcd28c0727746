package block

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGrid = errors.New("plane dimension is not divisible by block size")
	ErrBadRatio    = errors.New("block grid does not cover the watermark exactly")
)

// Grid describes the partition of a square plane into non-overlapping
// square blocks that tile it exactly, in raster order.
type Grid struct {
	Dim   int // plane width and height
	Size  int // block side length
	Side  int // blocks per row and per column
	Area  int // samples per block
	Total int // block count
}

func NewGrid(dim, size int) (Grid, error) {
	if size < 2 || dim%size != 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d plane, block size %d", ErrInvalidGrid, dim, dim, size)
	}
	side := dim / size
	return Grid{
		Dim:   dim,
		Size:  size,
		Side:  side,
		Area:  size * size,
		Total: side * side,
	}, nil
}

// Map returns the index map from row-major plane positions to the
// block-contiguous layout: after Pack, block b occupies
// packed[b*Area:(b+1)*Area], itself row-major within the block. The
// rearrangement lets the transform and inverse transform reference each
// block as a plain sub-slice without copying per block.
func (g Grid) Map() []int {
	m := make([]int, g.Dim*g.Dim)
	for i := range m {
		x, y := i%g.Dim, i/g.Dim
		start := ((y/g.Size)*g.Side + x/g.Size) * g.Area
		m[i] = start + (y%g.Size)*g.Size + x%g.Size
	}
	return m
}

// Pack rearranges a row-major plane into the block-contiguous layout
// described by m.
func (g Grid) Pack(data []float32, m []int) []float32 {
	packed := make([]float32, len(data))
	for i, v := range data {
		packed[m[i]] = v
	}
	return packed
}

// Unpack reverses Pack.
func (g Grid) Unpack(packed []float32, m []int) []float32 {
	data := make([]float32, len(packed))
	for i := range data {
		data[i] = packed[m[i]]
	}
	return data
}

// Correspondence is the fixed geometric bijection between watermark
// pixel coordinates and (block, slot) pairs. Each host block carries the
// Ratio x Ratio patch of watermark pixels at the same relative position,
// so every watermark pixel maps to exactly one slot and back. The map is
// pure arithmetic: it carries no randomness and is identical between
// embedding and extraction.
type Correspondence struct {
	WMDim int // watermark width and height
	Side  int // host blocks per row and per column
	Ratio int // watermark pixels per block side
	Slots int // Ratio*Ratio, sub-samples carried per block per channel
}

func NewCorrespondence(hostDim, blockSize, wmDim int) (Correspondence, error) {
	side := hostDim / blockSize
	if side <= 0 || wmDim%side != 0 {
		return Correspondence{}, fmt.Errorf("%w: %d blocks per side, %dx%d watermark",
			ErrBadRatio, side, wmDim, wmDim)
	}
	ratio := wmDim / side
	c := Correspondence{WMDim: wmDim, Side: side, Ratio: ratio, Slots: ratio * ratio}
	if side*side*c.Slots != wmDim*wmDim {
		return Correspondence{}, fmt.Errorf("%w: %d blocks x %d slots != %d pixels",
			ErrBadRatio, side*side, c.Slots, wmDim*wmDim)
	}
	return c, nil
}

// PixelOf returns the watermark pixel coordinate carried by the given
// block and slot.
func (c Correspondence) PixelOf(blk, slot int) (x, y int) {
	bx, by := blk%c.Side, blk/c.Side
	return bx*c.Ratio + slot%c.Ratio, by*c.Ratio + slot/c.Ratio
}

// SlotOf is the inverse of PixelOf.
func (c Correspondence) SlotOf(x, y int) (blk, slot int) {
	bx, by := x/c.Ratio, y/c.Ratio
	return by*c.Side + bx, (y%c.Ratio)*c.Ratio + x%c.Ratio
}
