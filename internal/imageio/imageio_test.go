package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := testImage(32, 24)

	for _, ext := range []string{".png", ".tiff", ".jpg"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "img"+ext)
			require.NoError(t, Save(path, src))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 32, got.Bounds().Dx())
			assert.Equal(t, 24, got.Bounds().Dy())
		})
	}
}

func TestSaveLoad_PNGLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	src := testImage(16, 16)
	require.NoError(t, Save(path, src))

	got, err := Load(path)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			wr, wg, wb, _ := src.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			require.Equal(t, wr, gr)
			require.Equal(t, wg, gg)
			require.Equal(t, wb, gb)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})
	t.Run("not_an_image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestResize(t *testing.T) {
	src := testImage(64, 64)

	t.Run("noop_at_target_size", func(t *testing.T) {
		assert.Equal(t, image.Image(src), Resize(src, 64, 64))
	})
	t.Run("downscale", func(t *testing.T) {
		got := Resize(src, 16, 16)
		assert.Equal(t, 16, got.Bounds().Dx())
		assert.Equal(t, 16, got.Bounds().Dy())
	})
}
