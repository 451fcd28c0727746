// Package qim implements scalar quantization index modulation: a symbol
// is encoded by snapping a coefficient to one of alphabet interleaved
// quantization lattices, one per symbol, spaced step apart. As long as
// later processing perturbs the coefficient by less than half the
// sub-lattice spacing, step/(2*alphabet), the decoded symbol is
// unchanged.
package qim

import "math"

// Embed moves coefficient c to the nearest point of the level-indexed
// sub-lattice {k*step + level*step/alphabet}, shifted by the dither d
// (QIM-DM). This is the minimal perturbation consistent with
// unambiguous decoding at the given step size.
func Embed(c float64, level int, d, step float64, alphabet int) float64 {
	o := float64(level) * step / float64(alphabet)
	return math.Round((c+d-o)/step)*step + o - d
}

// Extract returns the level whose dithered sub-lattice point is nearest
// to c. Halfway values resolve to the lower level.
func Extract(c, d, step float64, alphabet int) int {
	fine := step / float64(alphabet)
	q := int(math.Ceil((c+d)/fine - 0.5))
	return ((q % alphabet) + alphabet) % alphabet
}

// LevelOf maps an 8-bit sample to its nearest alphabet level. For
// alphabet 2 this is binarization with the threshold between 127 and
// 128.
func LevelOf(sample uint8, alphabet int) int {
	return int(math.Round(float64(sample) * float64(alphabet-1) / 255.0))
}

// SampleOf maps an alphabet level back to its 8-bit sample.
// LevelOf(SampleOf(l, n), n) == l for every level l.
func SampleOf(level, alphabet int) uint8 {
	return uint8(math.Round(float64(level) * 255.0 / float64(alphabet-1)))
}
