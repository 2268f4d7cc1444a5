//go:build !opencl

package wave

import "errors"

type openCLIntegrator struct{}

func newOpenCLIntegrator(width, height int, _ *Kernel) (*openCLIntegrator, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLIntegrator) advance(f *Field, k *Kernel, dt float32) {}

func (s *openCLIntegrator) close() {}

func (s *openCLIntegrator) DeviceName() string { return "" }
