// Package quality compares two images of equal dimensions with the
// usual distortion metrics.
package quality

import (
	"errors"
	"image"
	"math"

	"github.com/yyyoichi/colormark/internal/plane"
)

var ErrBoundsMismatch = errors.New("image dimensions do not match")

// Metrics holds the per-channel-averaged comparison of two images.
type Metrics struct {
	MSE  float64 // mean squared error
	PSNR float64 // peak signal-to-noise ratio in dB, +Inf for identical images
	MAE  float64 // mean absolute error
}

// Compare measures the distortion of b relative to a over the RGB
// channels.
func Compare(a, b image.Image) (Metrics, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return Metrics{}, ErrBoundsMismatch
	}
	pa, pb := plane.Split(a), plane.Split(b)

	var sqSum, absSum float64
	for ch := range pa.Colors {
		for i := range pa.Colors[ch] {
			d := float64(pa.Colors[ch][i]) - float64(pb.Colors[ch][i])
			sqSum += d * d
			absSum += math.Abs(d)
		}
	}
	n := float64(3 * pa.Width * pa.Height)
	m := Metrics{MSE: sqSum / n, MAE: absSum / n}
	if m.MSE == 0 {
		m.PSNR = math.Inf(1)
	} else {
		m.PSNR = 10 * math.Log10(255*255/m.MSE)
	}
	return m, nil
}
