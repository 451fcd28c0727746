package kmeans

import "math"

// Split2 performs k-means clustering on one-dimensional data with k=2
// and returns, per value, whether it belongs to the high cluster.
//
// Centers start at the minimum and maximum of the input and are refined
// by alternating assignment and mean updates until the midpoint
// stabilizes. When the input is (near) constant there is nothing to
// cluster and values are classified against 0.5, which matches the
// binary symbols this package is used to decide.
func Split2(values []float64) []bool {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	isHigh := make([]bool, len(values))
	const etol = 1e-6
	if hi-lo < etol {
		for i, v := range values {
			isHigh[i] = v >= 0.5
		}
		return isHigh
	}

	center := [2]float64{lo, hi}
	for range 300 {
		threshold := (center[0] + center[1]) / 2
		var highs, lows Mean
		for i, v := range values {
			if v >= threshold {
				isHigh[i] = true
				highs.Add(v)
			} else {
				isHigh[i] = false
				lows.Add(v)
			}
		}
		center = [2]float64{lows.Value(), highs.Value()}
		if math.Abs((center[0]+center[1])/2-threshold) < etol {
			break
		}
	}
	return isHigh
}
