// Package selector derives the key-dependent carrier tables shared by
// embedding and extraction. Both sides build the tables independently
// from the key alone, so equal keys always yield bit-identical tables.
package selector

import "math/rand"

// Pool returns the mid-frequency carrier candidates of a size x size
// coefficient grid: every (u, v) with 2 <= u+v <= size-2, as row-major
// indices. The DC coefficient and the highest-frequency corner are
// excluded by construction; the lowest band carries most of the visual
// energy and the highest band is the first to be discarded by lossy
// re-quantization.
func Pool(size int) []int {
	var pool []int
	for u := 0; u < size; u++ {
		for v := 0; v < size; v++ {
			if s := u + v; 2 <= s && s <= size-2 {
				pool = append(pool, u*size+v)
			}
		}
	}
	return pool
}

// State holds the tables derived from one key: per block and color plane
// an ordered set of carrier coefficient positions, per block and slot a
// permutation assigning watermark channels to planes, and per carrier a
// dither fraction for QIM-DM. State is immutable after Build and safe to
// share across goroutines.
type State struct {
	slots    int
	carriers [][]int    // [block*3+plane] -> slot-ordered coefficient indices
	chans    [][3]int   // [block*slots+slot] -> channel carried by each plane
	dither   [][]float64 // [block*3+plane] -> per-slot dither fraction in [-1/2, 1/2)
}

// Build derives the selector tables for the given key and geometry.
// The carrier positions depend only on the key and the block index,
// never on coefficient values.
func Build(key uint64, blocks, blockSize, slots int) *State {
	rng := rand.New(rand.NewSource(int64(key)))
	pool := Pool(blockSize)

	st := &State{
		slots:    slots,
		carriers: make([][]int, blocks*3),
		chans:    make([][3]int, blocks*slots),
		dither:   make([][]float64, blocks*3),
	}
	for b := range blocks {
		for p := range 3 {
			perm := rng.Perm(len(pool))
			carriers := make([]int, slots)
			dither := make([]float64, slots)
			for s := range slots {
				carriers[s] = pool[perm[s]]
				dither[s] = rng.Float64() - 0.5
			}
			st.carriers[b*3+p] = carriers
			st.dither[b*3+p] = dither
		}
		for s := range slots {
			perm := rng.Perm(3)
			st.chans[b*slots+s] = [3]int{perm[0], perm[1], perm[2]}
		}
	}
	return st
}

// Carriers returns the slot-ordered carrier coefficient indices for one
// block of one color plane.
func (st *State) Carriers(block, plane int) []int {
	return st.carriers[block*3+plane]
}

// Channel returns the watermark channel carried by the given plane for
// one block slot. For a fixed (block, slot) the three planes carry the
// three channels in some key-dependent order.
func (st *State) Channel(block, slot, plane int) int {
	return st.chans[block*st.slots+slot][plane]
}

// Dither returns the dither fraction for one carrier, in [-1/2, 1/2).
// Callers scale it by the step size; keeping the fraction here makes the
// tables independent of the step, so one key reproduces them for any
// step size.
func (st *State) Dither(block, plane, slot int) float64 {
	return st.dither[block*3+plane][slot]
}
