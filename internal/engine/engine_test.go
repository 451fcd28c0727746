package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/colormark/internal/block"
	"github.com/yyyoichi/colormark/internal/plane"
	"github.com/yyyoichi/colormark/internal/selector"
)

// smallConfig builds a 32x32 host grid of 8x8 blocks carrying an 8x8
// watermark, the smallest geometry with the default block size.
func smallConfig(t *testing.T, key uint64) Config {
	t.Helper()
	grid, err := block.NewGrid(32, 8)
	require.NoError(t, err)
	corr, err := block.NewCorrespondence(32, 8, 8)
	require.NoError(t, err)
	return Config{
		Grid:     grid,
		Corr:     corr,
		Sel:      selector.Build(key, grid.Total, 8, corr.Slots),
		Step:     50,
		Alphabet: 2,
	}
}

func randomPlanes(w, h int, lo, span int, seed int64) *plane.Planes {
	rng := rand.New(rand.NewSource(seed))
	p := plane.New(w, h)
	for ch := range p.Colors {
		for i := range p.Colors[ch] {
			p.Colors[ch][i] = float32(lo + rng.Intn(span))
		}
	}
	return p
}

func TestEmbedExtract(t *testing.T) {
	ctx := context.Background()
	cfg := smallConfig(t, 42)

	host := randomPlanes(32, 32, 30, 196, 1)
	wm := plane.New(8, 8)
	rng := rand.New(rand.NewSource(2))
	for ch := range wm.Colors {
		for i := range wm.Colors[ch] {
			wm.Colors[ch][i] = float32(255 * rng.Intn(2))
		}
	}

	Embed(ctx, host, wm, cfg)
	got := Extract(ctx, host, cfg)

	require.Equal(t, 8, got.Width)
	require.Equal(t, 8, got.Height)
	for ch := range wm.Colors {
		assert.Equal(t, wm.Colors[ch], got.Colors[ch], "channel %d", ch)
	}
}

func TestEmbed_LeavesNonCarriersClose(t *testing.T) {
	// Embedding moves carriers by at most step/2 each; the spatial image
	// must stay close to the original.
	ctx := context.Background()
	cfg := smallConfig(t, 7)

	host := randomPlanes(32, 32, 30, 196, 3)
	original := randomPlanes(32, 32, 30, 196, 3)
	wm := plane.New(8, 8)

	Embed(ctx, host, wm, cfg)

	for ch := range host.Colors {
		for i := range host.Colors[ch] {
			assert.InDelta(t, original.Colors[ch][i], host.Colors[ch][i], 30,
				"channel %d sample %d drifted", ch, i)
		}
	}
}

type sliceMark []float64

func (m sliceMark) GetBit(at int) float64 { return m[at%len(m)] }
func (m sliceMark) Len() int              { return len(m) }

func TestEmbedExtractPayload(t *testing.T) {
	ctx := context.Background()
	cfg := smallConfig(t, 42)

	host := randomPlanes(32, 32, 30, 196, 4)
	mark := sliceMark{1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 1, 1, 0}

	EmbedPayload(ctx, host, mark, cfg)
	got := ExtractPayload(ctx, host, mark.Len(), cfg)

	require.Len(t, got, mark.Len())
	for i, want := range mark {
		assert.Equal(t, want == 1, got[i], "bit %d", i)
	}
}
