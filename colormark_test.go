package colormark_test

import (
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/colormark"
)

// testHost builds a host whose samples stay away from 0 and 255, so the
// embedding perturbation never clips.
func testHost(seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, colormark.HostSize, colormark.HostSize))
	for y := 0; y < colormark.HostSize; y++ {
		for x := 0; x < colormark.HostSize; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(30 + rng.Intn(196)),
				G: uint8(30 + rng.Intn(196)),
				B: uint8(30 + rng.Intn(196)),
				A: 255,
			})
		}
	}
	return img
}

// binaryWatermark builds a watermark whose channel samples are exactly 0
// or 255, the values a two-level lattice reproduces without loss.
func binaryWatermark(seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, colormark.WatermarkSize, colormark.WatermarkSize))
	levels := []uint8{0, 255}
	for y := 0; y < colormark.WatermarkSize; y++ {
		for x := 0; x < colormark.WatermarkSize; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: levels[rng.Intn(2)],
				G: levels[rng.Intn(2)],
				B: levels[rng.Intn(2)],
				A: 255,
			})
		}
	}
	return img
}

func requireEqualImages(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Dx(), got.Bounds().Dx())
	require.Equal(t, want.Bounds().Dy(), got.Bounds().Dy())
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			wr, wg, wb, _ := want.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			require.Equal(t, wr>>8, gr>>8, "R at (%d,%d)", x, y)
			require.Equal(t, wg>>8, gg>>8, "G at (%d,%d)", x, y)
			require.Equal(t, wb>>8, gb>>8, "B at (%d,%d)", x, y)
		}
	}
}

// meanAbsDiff averages |a-b| over the RGB channels of two images.
func meanAbsDiff(a, b image.Image) float64 {
	var sum float64
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ar, ag, ab, _ := a.At(x, y).RGBA()
			br, bg, bb, _ := b.At(x, y).RGBA()
			sum += math.Abs(float64(ar>>8) - float64(br>>8))
			sum += math.Abs(float64(ag>>8) - float64(bg>>8))
			sum += math.Abs(float64(ab>>8) - float64(bb>>8))
		}
	}
	return sum / float64(3*w*h)
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	ctx := context.Background()
	host := testHost(1)
	wm := binaryWatermark(2)
	const key = 42

	marked, err := colormark.Embed(ctx, host, wm, key)
	require.NoError(t, err)

	got, err := colormark.Extract(ctx, marked, key)
	require.NoError(t, err)
	requireEqualImages(t, wm, got)
}

func TestEmbedExtract_SurvivesPixelNoise(t *testing.T) {
	// Small per-pixel perturbations, the kind lossy re-encoding leaves
	// behind, stay well inside the lattice decoding margin.
	ctx := context.Background()
	host := testHost(3)
	wm := binaryWatermark(4)
	const key = 42

	marked, err := colormark.Embed(ctx, host, wm, key)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	noisy := image.NewRGBA(marked.Bounds())
	for y := 0; y < colormark.HostSize; y++ {
		for x := 0; x < colormark.HostSize; x++ {
			r, g, b, _ := marked.At(x, y).RGBA()
			jitter := func(v uint32) uint8 {
				return uint8(int(v>>8) + rng.Intn(5) - 2)
			}
			noisy.SetRGBA(x, y, color.RGBA{R: jitter(r), G: jitter(g), B: jitter(b), A: 255})
		}
	}

	got, err := colormark.Extract(ctx, noisy, key)
	require.NoError(t, err)
	requireEqualImages(t, wm, got)
}

func TestEmbedExtract_Alphabet4(t *testing.T) {
	// With four levels per carrier the watermark may use the four exactly
	// representable samples per channel.
	ctx := context.Background()
	host := testHost(6)

	rng := rand.New(rand.NewSource(7))
	levels := []uint8{0, 85, 170, 255}
	wm := image.NewRGBA(image.Rect(0, 0, colormark.WatermarkSize, colormark.WatermarkSize))
	for y := 0; y < colormark.WatermarkSize; y++ {
		for x := 0; x < colormark.WatermarkSize; x++ {
			wm.SetRGBA(x, y, color.RGBA{
				R: levels[rng.Intn(4)],
				G: levels[rng.Intn(4)],
				B: levels[rng.Intn(4)],
				A: 255,
			})
		}
	}

	const key = 99
	marked, err := colormark.Embed(ctx, host, wm, key, colormark.WithAlphabet(4))
	require.NoError(t, err)
	got, err := colormark.Extract(ctx, marked, key, colormark.WithAlphabet(4))
	require.NoError(t, err)
	requireEqualImages(t, wm, got)
}

func TestExtract_WrongKey(t *testing.T) {
	ctx := context.Background()
	host := testHost(8)
	wm := binaryWatermark(9)

	marked, err := colormark.Embed(ctx, host, wm, 42)
	require.NoError(t, err)

	got, err := colormark.Extract(ctx, marked, 43)
	require.NoError(t, err)

	// A wrong key reads unrelated carriers; the result is noise, not a
	// slightly damaged watermark.
	assert.Greater(t, meanAbsDiff(wm, got), 60.0)
}

func TestEmbed_Determinism(t *testing.T) {
	ctx := context.Background()
	host := testHost(10)
	wm := binaryWatermark(11)

	a, err := colormark.Embed(ctx, host, wm, 7)
	require.NoError(t, err)
	b, err := colormark.Embed(ctx, host, wm, 7)
	require.NoError(t, err)
	requireEqualImages(t, a, b)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	good := testHost(12)
	wm := binaryWatermark(13)
	bad := image.NewRGBA(image.Rect(0, 0, 100, 100))

	t.Run("host", func(t *testing.T) {
		_, err := colormark.Embed(ctx, bad, wm, 1)
		assert.ErrorIs(t, err, colormark.ErrDimensionMismatch)
	})
	t.Run("watermark", func(t *testing.T) {
		_, err := colormark.Embed(ctx, good, bad, 1)
		assert.ErrorIs(t, err, colormark.ErrDimensionMismatch)
	})
	t.Run("marked", func(t *testing.T) {
		_, err := colormark.Extract(ctx, bad, 1)
		assert.ErrorIs(t, err, colormark.ErrDimensionMismatch)
	})
}

func TestOptions_Validation(t *testing.T) {
	t.Run("non_positive_step", func(t *testing.T) {
		_, err := colormark.New(colormark.WithStepSize(0))
		assert.ErrorIs(t, err, colormark.ErrInvalidParameter)
		_, err = colormark.New(colormark.WithStepSize(-1))
		assert.ErrorIs(t, err, colormark.ErrInvalidParameter)
	})
	t.Run("alphabet_out_of_range", func(t *testing.T) {
		_, err := colormark.New(colormark.WithAlphabet(1))
		assert.ErrorIs(t, err, colormark.ErrInvalidParameter)
		_, err = colormark.New(colormark.WithAlphabet(257))
		assert.ErrorIs(t, err, colormark.ErrInvalidParameter)
	})
	t.Run("block_size_too_small", func(t *testing.T) {
		_, err := colormark.New(colormark.WithBlockSize(1))
		assert.ErrorIs(t, err, colormark.ErrInvalidParameter)
	})
	t.Run("block_size_does_not_tile", func(t *testing.T) {
		// 512 is not divisible by 7; the grid is rejected at call time
		_, err := colormark.Embed(context.Background(), testHost(14), binaryWatermark(15), 1,
			colormark.WithBlockSize(7))
		assert.ErrorIs(t, err, colormark.ErrInvalidBlockGrid)
	})
}
