// Package engine runs the embedding and extraction pipelines over
// validated inputs. All validation happens before the engine is
// invoked; nothing here fails.
package engine

import (
	"context"
	"sync"

	"github.com/yyyoichi/colormark/internal/block"
	"github.com/yyyoichi/colormark/internal/dct"
	"github.com/yyyoichi/colormark/internal/kmeans"
	"github.com/yyyoichi/colormark/internal/plane"
	"github.com/yyyoichi/colormark/internal/qim"
	"github.com/yyyoichi/colormark/internal/selector"
)

// Config carries the validated, immutable parameters of one embed or
// extract call. The selector tables are read-only and shared by the
// per-plane goroutines.
type Config struct {
	Grid     block.Grid
	Corr     block.Correspondence
	Sel      *selector.State
	Step     float64
	Alphabet int
}

// BitSource is the bit-level view of a payload mark. Positions past the
// mark length wrap around, so the mark repeats over the carriers.
type BitSource interface {
	GetBit(at int) float64
	Len() int
}

// Embed writes the watermark planes into the host planes in place.
//
// Each color plane is processed by its own goroutine: the plane is
// packed into block-contiguous layout, every block is forward
// transformed, its carrier coefficients are moved to the lattice points
// encoding the corresponding watermark sub-samples, and the block is
// inverse transformed. The per-plane buffers are disjoint, so the only
// synchronization is the final barrier.
func Embed(_ context.Context, host, wm *plane.Planes, cfg Config) {
	var (
		indexMap = cfg.Grid.Map()
		dcos     = dct.For(cfg.Grid.Size)
		area     = cfg.Grid.Area
	)
	var wg sync.WaitGroup
	wg.Add(3)
	for p := range 3 {
		go func(p int) {
			defer wg.Done()
			packed := cfg.Grid.Pack(host.Colors[p], indexMap)
			for b := range cfg.Grid.Total {
				data := packed[b*area : (b+1)*area : (b+1)*area]
				coeffs, inverse := dcos.Transform(data)
				for s, at := range cfg.Sel.Carriers(b, p) {
					x, y := cfg.Corr.PixelOf(b, s)
					ch := cfg.Sel.Channel(b, s, p)
					level := qim.LevelOf(wm.At8(ch, x, y), cfg.Alphabet)
					d := cfg.Sel.Dither(b, p, s) * cfg.Step
					coeffs[at] = qim.Embed(coeffs[at], level, d, cfg.Step, cfg.Alphabet)
				}
				inverse()
			}
			host.Colors[p] = cfg.Grid.Unpack(packed, indexMap)
		}(p)
	}
	wg.Wait()
}

// Extract reads the watermark back out of the marked planes. No inverse
// transform or host reassembly is needed; every carrier decides its
// sub-sample independently and writes into a disjoint watermark pixel
// channel.
func Extract(_ context.Context, marked *plane.Planes, cfg Config) *plane.Planes {
	var (
		indexMap = cfg.Grid.Map()
		dcos     = dct.For(cfg.Grid.Size)
		area     = cfg.Grid.Area
		wm       = plane.New(cfg.Corr.WMDim, cfg.Corr.WMDim)
	)
	var wg sync.WaitGroup
	wg.Add(3)
	for p := range 3 {
		go func(p int) {
			defer wg.Done()
			packed := cfg.Grid.Pack(marked.Colors[p], indexMap)
			for b := range cfg.Grid.Total {
				data := packed[b*area : (b+1)*area : (b+1)*area]
				coeffs, _ := dcos.Transform(data)
				for s, at := range cfg.Sel.Carriers(b, p) {
					d := cfg.Sel.Dither(b, p, s) * cfg.Step
					level := qim.Extract(coeffs[at], d, cfg.Step, cfg.Alphabet)
					x, y := cfg.Corr.PixelOf(b, s)
					ch := cfg.Sel.Channel(b, s, p)
					wm.Set8(ch, x, y, qim.SampleOf(level, cfg.Alphabet))
				}
			}
		}(p)
	}
	wg.Wait()
	return wm
}

// EmbedPayload writes a repeating bit sequence into the host planes in
// place, one bit per carrier over a binary lattice. The carrier at slot
// s of block b in plane p holds bit (b*3+p)*slots+s of the repeated
// mark.
func EmbedPayload(_ context.Context, host *plane.Planes, mark BitSource, cfg Config) {
	var (
		indexMap = cfg.Grid.Map()
		dcos     = dct.For(cfg.Grid.Size)
		area     = cfg.Grid.Area
		slots    = cfg.Corr.Slots
	)
	var wg sync.WaitGroup
	wg.Add(3)
	for p := range 3 {
		go func(p int) {
			defer wg.Done()
			packed := cfg.Grid.Pack(host.Colors[p], indexMap)
			for b := range cfg.Grid.Total {
				data := packed[b*area : (b+1)*area : (b+1)*area]
				coeffs, inverse := dcos.Transform(data)
				for s, at := range cfg.Sel.Carriers(b, p) {
					bit := int(mark.GetBit((b*3+p)*slots + s))
					d := cfg.Sel.Dither(b, p, s) * cfg.Step
					coeffs[at] = qim.Embed(coeffs[at], bit, d, cfg.Step, 2)
				}
				inverse()
			}
			host.Colors[p] = cfg.Grid.Unpack(packed, indexMap)
		}(p)
	}
	wg.Wait()
}

// ExtractPayload decodes a repeated markLen-bit sequence from the
// marked planes. Every repetition of a bit contributes to a running
// average and the averages are split into zeros and ones by 1-D
// 2-means, so isolated carrier errors are voted away.
func ExtractPayload(_ context.Context, marked *plane.Planes, markLen int, cfg Config) []bool {
	var (
		indexMap = cfg.Grid.Map()
		dcos     = dct.For(cfg.Grid.Size)
		area     = cfg.Grid.Area
		slots    = cfg.Corr.Slots
		votes    = make([]kmeans.Mean, markLen)
	)
	var wg sync.WaitGroup
	wg.Add(3)
	for p := range 3 {
		go func(p int) {
			defer wg.Done()
			packed := cfg.Grid.Pack(marked.Colors[p], indexMap)
			for b := range cfg.Grid.Total {
				data := packed[b*area : (b+1)*area : (b+1)*area]
				coeffs, _ := dcos.Transform(data)
				for s, at := range cfg.Sel.Carriers(b, p) {
					d := cfg.Sel.Dither(b, p, s) * cfg.Step
					bit := qim.Extract(coeffs[at], d, cfg.Step, 2)
					votes[((b*3+p)*slots+s)%markLen].Add(float64(bit))
				}
			}
		}(p)
	}
	wg.Wait()

	averages := make([]float64, markLen)
	for i := range votes {
		averages[i] = votes[i].Value()
	}
	return kmeans.Split2(averages)
}
