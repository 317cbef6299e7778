package audio

import "sync"

// Ring is a fixed-capacity circular buffer of samples. A single writer
// (the capture goroutine) appends while readers copy the latest samples.
type Ring struct {
	mu    sync.Mutex
	buf   []float32
	pos   int // next write index
	count int // samples written, capped at len(buf)
}

// NewRing creates a ring holding up to capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns how many valid samples the ring currently holds.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Write appends samples, overwriting the oldest when full.
func (r *Ring) Write(samples []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Only the tail can survive a write larger than the ring
	if len(samples) > len(r.buf) {
		samples = samples[len(samples)-len(r.buf):]
	}

	for len(samples) > 0 {
		n := copy(r.buf[r.pos:], samples)
		samples = samples[n:]
		r.pos = (r.pos + n) % len(r.buf)
		r.count += n
	}
	if r.count > len(r.buf) {
		r.count = len(r.buf)
	}
}

// Latest copies the most recent len(dst) samples into dst, oldest first.
// Missing history is zero-filled at the front. Returns the number of real
// samples copied.
func (r *Ring) Latest(dst []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(dst)
	if n > r.count {
		n = r.count
	}

	pad := len(dst) - n
	for i := 0; i < pad; i++ {
		dst[i] = 0
	}

	start := (r.pos - n + len(r.buf)) % len(r.buf)
	first := copy(dst[pad:], r.buf[start:min(start+n, len(r.buf))])
	if first < n {
		copy(dst[pad+first:], r.buf[:n-first])
	}
	return n
}

// Reset discards all samples.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	r.count = 0
	clear(r.buf)
}
