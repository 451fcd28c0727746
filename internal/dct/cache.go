package dct

import "sync"

var cache sync.Map

// For returns the shared DCT instance for the given block size, building
// it on first use. Instances are immutable after construction and safe
// to share across goroutines.
func For(n int) *DCT {
	if v, ok := cache.Load(n); ok {
		return v.(*DCT)
	}
	d := New(n)
	actual, loaded := cache.LoadOrStore(n, d)
	if loaded {
		return actual.(*DCT)
	}
	return d
}
