package colormark

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/colormark/internal/engine"
	"github.com/yyyoichi/colormark/internal/plane"
)

var ErrMarkTooLong = errors.New("mark is longer than the carrier capacity")

// EmbedMark is the bit-level view of a payload to embed. GetBit must
// treat positions past Len as wrapping around, so the mark repeats over
// the carriers.
type EmbedMark interface {
	GetBit(at int) float64
	Len() int
}

// ExtractMark describes the expected shape of an embedded payload and
// turns raw extracted bits into a decoder.
type ExtractMark interface {
	NewDecoder(bits []bool) MarkDecoder
	Len() int
}

// MarkDecoder exposes the recovered payload. Decoding can fail when an
// error-correcting or encrypted mark is damaged beyond repair.
type MarkDecoder interface {
	DecodeToBytes() ([]byte, error)
	DecodeToString() (string, error)
	DecodeToBools() ([]bool, error)
}

// EmbedPayload embeds an arbitrary bit sequence into the host over the
// same keyed carriers the image watermark would use, one bit per
// carrier. Shorter marks repeat cyclically, and extraction votes over
// the repetitions, so short payloads gain robustness for free.
func (w *Watermark) EmbedPayload(ctx context.Context, host image.Image, mark EmbedMark, key uint64) (image.Image, error) {
	cfg, err := w.config(key)
	if err != nil {
		return nil, err
	}
	if err := checkSize(host, HostSize, "host"); err != nil {
		return nil, err
	}
	if capacity := cfg.Grid.Total * 3 * cfg.Corr.Slots; mark.Len() > capacity {
		return nil, fmt.Errorf("%w: %d bits > %d carriers", ErrMarkTooLong, mark.Len(), capacity)
	}
	hostPlanes := plane.Split(host)
	engine.EmbedPayload(ctx, hostPlanes, mark, cfg)
	return hostPlanes.Image(), nil
}

// ExtractPayload recovers a payload embedded with EmbedPayload. The
// mark must be constructed with the same length and options as the one
// that was embedded.
func (w *Watermark) ExtractPayload(ctx context.Context, marked image.Image, mark ExtractMark, key uint64) (MarkDecoder, error) {
	cfg, err := w.config(key)
	if err != nil {
		return nil, err
	}
	if err := checkSize(marked, HostSize, "marked image"); err != nil {
		return nil, err
	}
	if capacity := cfg.Grid.Total * 3 * cfg.Corr.Slots; mark.Len() > capacity {
		return nil, fmt.Errorf("%w: %d bits > %d carriers", ErrMarkTooLong, mark.Len(), capacity)
	}
	markedPlanes := plane.Split(marked)
	bits := engine.ExtractPayload(ctx, markedPlanes, mark.Len(), cfg)
	return mark.NewDecoder(bits), nil
}
