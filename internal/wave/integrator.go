package wave

import (
	"fmt"
	"strings"
)

// Backend selects how AdvanceField computes the next amplitude grid.
type Backend string

const (
	// BackendDirect runs the 9-point stencil on a CPU worker pool.
	BackendDirect Backend = "direct"
	// BackendFFT convolves through a zero-padded 2D FFT. It is slower and
	// exists to cross-check the stencil.
	BackendFFT Backend = "fft"
	// BackendOpenCL runs the whole update on an OpenCL device. Only
	// available in builds tagged opencl.
	BackendOpenCL Backend = "opencl"
)

// ParseBackend maps a user supplied name onto a Backend.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendDirect:
		return BackendDirect, nil
	case BackendFFT:
		return BackendFFT, nil
	case BackendOpenCL:
		return BackendOpenCL, nil
	}
	return "", fmt.Errorf("unknown backend %q", name)
}

// integrator writes f.next from f.curr, f.prev and the medium. Callers rotate
// the buffers afterwards.
type integrator interface {
	advance(f *Field, k *Kernel, dt float32)
	close()
}

// cpuIntegrator is the default direct stencil backend.
type cpuIntegrator struct {
	pool *stencilPool
}

func newCPUIntegrator(workers, height int) *cpuIntegrator {
	return &cpuIntegrator{pool: newStencilPool(workers, height)}
}

func (c *cpuIntegrator) advance(f *Field, k *Kernel, dt float32) {
	c.pool.advance(f, k, dt)
}

func (c *cpuIntegrator) close() {
	c.pool.close()
}

// fftIntegrator computes the full Laplacian grid by FFT, then applies the
// leapfrog update cell by cell.
type fftIntegrator struct {
	conv *fftConvolver
	lap  []float32
}

func newFFTIntegrator(width, height int, k *Kernel) *fftIntegrator {
	return &fftIntegrator{
		conv: newFFTConvolver(width, height, k),
		lap:  make([]float32, width*height),
	}
}

func (c *fftIntegrator) advance(f *Field, _ *Kernel, dt float32) {
	c.conv.convolve(c.lap, f.curr)
	u, up := f.curr.Data, f.prev.Data
	d, s := f.damping.Data, f.speed.Data
	for i := range f.next.Data {
		f.next.Data[i] = leapfrog(u[i], up[i], d[i], s[i], c.lap[i], dt)
	}
}

func (c *fftIntegrator) close() {}
