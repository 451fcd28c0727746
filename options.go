package colormark

import "fmt"

type Option func(*Watermark) error

// WithStepSize sets the quantization step. Larger values survive
// heavier re-compression but increase visible distortion; this is the
// single robustness knob. The same value must be used for an embed and
// its matching extract.
func WithStepSize(step float64) Option {
	return func(w *Watermark) error {
		if step <= 0 {
			return fmt.Errorf("%w: step size %v must be positive", ErrInvalidParameter, step)
		}
		w.step = step
		return nil
	}
}

// WithAlphabet sets how many levels each carrier encodes, from 2
// (per-channel binarization, the default) up to 256 (full 8-bit
// samples). More levels keep more of the watermark's color depth but
// shrink the decoding margin by the same factor, so high alphabets only
// survive very mild re-encoding.
func WithAlphabet(n int) Option {
	return func(w *Watermark) error {
		if n < 2 || n > 256 {
			return fmt.Errorf("%w: alphabet %d out of range [2,256]", ErrInvalidParameter, n)
		}
		w.alphabet = n
		return nil
	}
}

// WithBlockSize sets the transform block side. It must tile both the
// host and, through the block grid, the watermark exactly; the default
// of 8 matches the JPEG block size the scheme is meant to survive.
func WithBlockSize(size int) Option {
	return func(w *Watermark) error {
		if size < 2 {
			return fmt.Errorf("%w: block size %d must be at least 2", ErrInvalidParameter, size)
		}
		w.blockSize = size
		return nil
	}
}
