package kmeans

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit2(t *testing.T) {
	t.Run("well_separated", func(t *testing.T) {
		values := []float64{0.1, 0.9, 0.05, 0.95, 0.0, 1.0}
		assert.Equal(t, []bool{false, true, false, true, false, true}, Split2(values))
	})

	t.Run("noisy_clusters", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		values := make([]float64, 200)
		want := make([]bool, 200)
		for i := range values {
			if i%2 == 0 {
				values[i] = 0.15 + rng.Float64()*0.2
			} else {
				values[i] = 0.65 + rng.Float64()*0.2
				want[i] = true
			}
		}
		assert.Equal(t, want, Split2(values))
	})

	t.Run("constant_low", func(t *testing.T) {
		got := Split2([]float64{0.1, 0.1, 0.1})
		assert.Equal(t, []bool{false, false, false}, got)
	})

	t.Run("constant_high", func(t *testing.T) {
		got := Split2([]float64{0.9, 0.9})
		assert.Equal(t, []bool{true, true}, got)
	})

	t.Run("single_value", func(t *testing.T) {
		assert.Equal(t, []bool{true}, Split2([]float64{1.0}))
		assert.Equal(t, []bool{false}, Split2([]float64{0.0}))
	})
}

func TestMean(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var m Mean
		assert.Equal(t, 0.0, m.Value())
		assert.Equal(t, 0, m.Count())
	})

	t.Run("average", func(t *testing.T) {
		var m Mean
		for _, v := range []float64{1, 2, 3, 4} {
			m.Add(v)
		}
		assert.Equal(t, 2.5, m.Value())
		assert.Equal(t, 4, m.Count())
	})

	t.Run("concurrent", func(t *testing.T) {
		var m Mean
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 1000 {
					m.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 8000, m.Count())
		assert.Equal(t, 1.0, m.Value())
	})
}
