package wave

import (
	"runtime"
	"sync"
)

// rowSpan is a half-open range of rows [start, end) owned by one worker.
type rowSpan struct{ start, end int }

// assignRowSpans splits height rows into at most workerCount contiguous bands.
func assignRowSpans(workerCount, height int) []rowSpan {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > height {
		workerCount = height
	}
	if workerCount < 1 {
		return nil
	}
	rowsPer := (height + workerCount - 1) / workerCount
	spans := make([]rowSpan, 0, workerCount)
	for y := 0; y < height; y += rowsPer {
		end := y + rowsPer
		if end > height {
			end = height
		}
		spans = append(spans, rowSpan{start: y, end: end})
	}
	return spans
}

// stencilPool advances a field with persistent worker goroutines. Every
// worker reads only curr/prev and writes its own rows of next; run returns
// once all workers have reported, before the buffers are rotated.
type stencilPool struct {
	spans []rowSpan

	mu      sync.Mutex
	cond    *sync.Cond
	step    int
	pending int
	stopped bool
	started bool

	field  *Field
	kernel *Kernel
	dt     float32
}

// newStencilPool sizes the pool for a grid height. workers <= 0 selects
// runtime.NumCPU().
func newStencilPool(workers, height int) *stencilPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &stencilPool{spans: assignRowSpans(workers, height)}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// start launches the background goroutines. A single-band pool runs inline.
func (p *stencilPool) start() {
	if p.started || len(p.spans) <= 1 {
		return
	}
	p.started = true
	for i := range p.spans {
		go p.workerLoop(i)
	}
}

func (p *stencilPool) workerLoop(index int) {
	span := p.spans[index]
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		f, k, dt := p.field, p.kernel, p.dt
		p.mu.Unlock()

		stepRows(f, k, dt, span.start, span.end)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// advance computes f.next from f.curr and f.prev across all bands.
func (p *stencilPool) advance(f *Field, k *Kernel, dt float32) {
	if len(p.spans) <= 1 {
		stepRows(f, k, dt, 0, f.height)
		return
	}
	p.start()
	p.mu.Lock()
	p.field, p.kernel, p.dt = f, k, dt
	p.pending = len(p.spans)
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.field, p.kernel = nil, nil
	p.mu.Unlock()
}

// close stops the worker goroutines.
func (p *stencilPool) close() {
	p.mu.Lock()
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
