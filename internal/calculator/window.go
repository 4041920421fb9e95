package calculator

// window is a fixed-size ring of the most recent values.
type window struct {
	buf   []float64
	idx   int // next write position
	count int
}

func newWindow(size int) *window {
	return &window{buf: make([]float64, size)}
}

func (w *window) push(v float64) {
	w.buf[w.idx] = v
	w.idx = (w.idx + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

func (w *window) full() bool { return w.count == len(w.buf) }

// mean re-sums the ring instead of keeping a running total, so a window of
// exact zeros averages to exactly zero.
func (w *window) mean() float64 {
	if w.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < w.count; i++ {
		sum += w.buf[i]
	}
	return sum / float64(w.count)
}

func (w *window) reset() {
	w.idx = 0
	w.count = 0
	for i := range w.buf {
		w.buf[i] = 0
	}
}
