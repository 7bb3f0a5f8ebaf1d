package buffer

import "fmt"

// Ring is a fixed-capacity history of the most recent samples.
//
// Samples are stored twice, in two mirrored halves of one backing slice, so
// the history ordered from most recent to oldest is always available as one
// contiguous slice (see [Ring.Window]) without copying. Pushing into a full
// ring evicts the oldest sample.
type Ring struct {
	data []float64
	head int
	n    int
}

// NewRing returns an empty ring holding up to capacity samples.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}
	return &Ring{data: make([]float64, 2*capacity)}, nil
}

// Push inserts x as the most recent sample. When the ring was already full
// the oldest sample is evicted and returned with ok=true.
func (r *Ring) Push(x float64) (evicted float64, ok bool) {
	size := len(r.data) / 2
	r.head--
	if r.head < 0 {
		r.head = size - 1
	}
	if r.n == size {
		evicted, ok = r.data[r.head], true
	} else {
		r.n++
	}
	r.data[r.head] = x
	r.data[r.head+size] = x
	return evicted, ok
}

// Window returns the stored samples ordered from most recent (index 0) to
// oldest. The slice aliases the ring: it must not be modified and is only
// valid until the next Push or Reset.
func (r *Ring) Window() []float64 {
	return r.data[r.head : r.head+r.n]
}

// At returns the sample i positions back from the most recent one.
// At(0) is the most recent sample. It panics if i is outside [0, Len()).
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("ring index out of range: %d (len %d)", i, r.n))
	}
	return r.data[r.head+i]
}

// Do calls fn for each stored sample from most recent to oldest.
func (r *Ring) Do(fn func(age int, x float64)) {
	for i, x := range r.Window() {
		fn(i, x)
	}
}

// Len returns the number of stored samples.
func (r *Ring) Len() int { return r.n }

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.data) / 2 }

// Full reports whether the ring holds Cap() samples.
func (r *Ring) Full() bool { return r.n == len(r.data)/2 }

// Reset empties the ring.
func (r *Ring) Reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.head = 0
	r.n = 0
}
