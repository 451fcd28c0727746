package kmeans

import "sync"

// Mean accumulates values and reports their running average. Add is
// safe for concurrent use; the zero value is ready to use.
type Mean struct {
	sum   float64
	count int
	mu    sync.Mutex
}

func (m *Mean) Add(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum += v
	m.count++
}

func (m *Mean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *Mean) Count() int { return m.count }
