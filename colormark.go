// Package colormark embeds a small color image imperceptibly into a
// larger color host image and recovers it later, even after the host
// has been lossily re-encoded.
//
// The host is split into color planes, each plane into 8x8 blocks, and
// every block is moved to the frequency domain with a 2-D DCT. A
// key-seeded selector picks mid-frequency carrier coefficients in each
// block, and each carrier is snapped to a quantization lattice indexed
// by one watermark sub-sample (quantization index modulation). The same
// key rebuilds the same carrier tables at extraction time, so embedding
// and extraction never communicate beyond the key and step size.
package colormark

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/colormark/internal/block"
	"github.com/yyyoichi/colormark/internal/engine"
	"github.com/yyyoichi/colormark/internal/plane"
	"github.com/yyyoichi/colormark/internal/selector"
)

const (
	// HostSize is the required width and height of host images.
	HostSize = 512
	// WatermarkSize is the required width and height of watermark
	// images.
	WatermarkSize = 128

	defaultBlockSize = 8
	defaultStepSize  = 50.0
	defaultAlphabet  = 2
)

var (
	ErrDimensionMismatch = errors.New("image dimensions do not match the configured size")
	ErrInvalidBlockGrid  = errors.New("block size does not tile the configured dimensions")
	ErrInvalidParameter  = errors.New("invalid parameter")
)

// Embed embeds the watermark image into the host image with the given
// key and options. This is a convenience function that creates a
// Watermark instance and calls its Embed method.
func Embed(ctx context.Context, host, wm image.Image, key uint64, opts ...Option) (image.Image, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Embed(ctx, host, wm, key)
}

// Extract recovers the watermark image from a marked image with the
// given key and options. This is a convenience function that creates a
// Watermark instance and calls its Extract method.
func Extract(ctx context.Context, marked image.Image, key uint64, opts ...Option) (image.Image, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Extract(ctx, marked, key)
}

type Watermark struct {
	step      float64
	alphabet  int
	blockSize int
}

// New initializes a watermark processor. The step size, alphabet and
// block size can be optionally specified; an embed and its matching
// extract must use identical values.
func New(opts ...Option) (*Watermark, error) {
	w := new(Watermark)
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.step == 0 {
		w.step = defaultStepSize
	}
	if w.alphabet == 0 {
		w.alphabet = defaultAlphabet
	}
	if w.blockSize == 0 {
		w.blockSize = defaultBlockSize
	}
	return w, nil
}

// Embed embeds a watermark image into a host image.
//
// Process:
//  1. Splits the host into R, G, B planes.
//  2. Partitions each plane into blocks and forward transforms them.
//  3. Builds the selector tables from the key.
//  4. Snaps each block's carrier coefficients to the lattice points
//     encoding the watermark sub-samples the block carries.
//  5. Inverse transforms, reassembles the planes and joins the image.
//
// The host must be HostSize x HostSize and the watermark
// WatermarkSize x WatermarkSize; anything else fails with
// ErrDimensionMismatch before any transform work begins.
func (w *Watermark) Embed(ctx context.Context, host, wm image.Image, key uint64) (image.Image, error) {
	cfg, err := w.config(key)
	if err != nil {
		return nil, err
	}
	if err := checkSize(host, HostSize, "host"); err != nil {
		return nil, err
	}
	if err := checkSize(wm, WatermarkSize, "watermark"); err != nil {
		return nil, err
	}
	hostPlanes := plane.Split(host)
	wmPlanes := plane.Split(wm)
	engine.Embed(ctx, hostPlanes, wmPlanes, cfg)
	return hostPlanes.Image(), nil
}

// Extract recovers the watermark image from a marked image. It mirrors
// Embed through the forward transform and the selector, then decides
// each sub-sample by nearest-lattice-point decoding; no inverse
// transform of the host is needed.
func (w *Watermark) Extract(ctx context.Context, marked image.Image, key uint64) (image.Image, error) {
	cfg, err := w.config(key)
	if err != nil {
		return nil, err
	}
	if err := checkSize(marked, HostSize, "marked image"); err != nil {
		return nil, err
	}
	markedPlanes := plane.Split(marked)
	return engine.Extract(ctx, markedPlanes, cfg).Image(), nil
}

// config validates the parameters and derives the immutable per-call
// state. Every failure is a caller usage error surfaced here, before
// any processing starts.
func (w *Watermark) config(key uint64) (engine.Config, error) {
	if w.step <= 0 {
		return engine.Config{}, fmt.Errorf("%w: step size %v must be positive", ErrInvalidParameter, w.step)
	}
	if w.alphabet < 2 || w.alphabet > 256 {
		return engine.Config{}, fmt.Errorf("%w: alphabet %d out of range [2,256]", ErrInvalidParameter, w.alphabet)
	}
	grid, err := block.NewGrid(HostSize, w.blockSize)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidBlockGrid, err)
	}
	corr, err := block.NewCorrespondence(HostSize, w.blockSize, WatermarkSize)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidBlockGrid, err)
	}
	if pool := selector.Pool(w.blockSize); len(pool) < corr.Slots {
		return engine.Config{}, fmt.Errorf("%w: block size %d offers %d mid-band carriers, need %d",
			ErrInvalidParameter, w.blockSize, len(pool), corr.Slots)
	}
	return engine.Config{
		Grid:     grid,
		Corr:     corr,
		Sel:      selector.Build(key, grid.Total, w.blockSize, corr.Slots),
		Step:     w.step,
		Alphabet: w.alphabet,
	}, nil
}

func checkSize(img image.Image, want int, name string) error {
	b := img.Bounds()
	if b.Dx() != want || b.Dy() != want {
		return fmt.Errorf("%w: %s must be %dx%d, got %dx%d",
			ErrDimensionMismatch, name, want, want, b.Dx(), b.Dy())
	}
	return nil
}
