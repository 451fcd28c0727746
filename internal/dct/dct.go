package dct

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DCT applies the orthonormal 2-D DCT-II to square blocks of a fixed
// side length n. The forward transform is the basis product B X Bt and
// the inverse is Bt X B, with the basis precomputed once per size. The
// transform keeps no per-block state, so blocks may be processed in any
// order and concurrently (each call allocates its own work matrices).
type DCT struct {
	n     int
	basis *mat.Dense
}

func New(n int) *DCT {
	nf := float64(n)
	b := mat.NewDense(n, n, nil)
	for j := range n {
		// i = 0
		b.Set(0, j, 1.0/math.Sqrt(nf))
	}
	for i := 1; i < n; i++ {
		for j := range n {
			b.Set(i, j, math.Sqrt(2.0/nf)*
				math.Cos(
					(float64(i)*math.Pi*(float64(j)*2+1))/
						(2.0*nf),
				))
		}
	}
	return &DCT{n: n, basis: b}
}

// Size returns the block side length the transform was built for.
func (d *DCT) Size() int { return d.n }

// Transform runs the forward DCT on one block and returns the
// coefficient grid (row-major, same dimensions as the block) together
// with a function that inverse-transforms the possibly modified
// coefficients back into data.
func (d *DCT) Transform(data []float32) ([]float64, func()) {
	n := d.n
	xs := make([]float64, n*n)
	for i, v := range data {
		xs[i] = float64(v)
	}
	x := mat.NewDense(n, n, xs)

	var tmp, out mat.Dense
	tmp.Mul(d.basis, x)
	out.Mul(&tmp, d.basis.T())
	coeffs := make([]float64, n*n)
	copy(coeffs, out.RawMatrix().Data)

	inverse := func() {
		c := mat.NewDense(n, n, coeffs)
		var t, rec mat.Dense
		t.Mul(d.basis.T(), c)
		rec.Mul(&t, d.basis)
		raw := rec.RawMatrix().Data
		for i := range data {
			data[i] = float32(raw[i])
		}
	}
	return coeffs, inverse
}
