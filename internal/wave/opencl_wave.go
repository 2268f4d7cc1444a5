//go:build opencl

package wave

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLIntegrator runs the damped leapfrog update on an OpenCL device. The
// host stays authoritative for curr and prev because sources are injected on
// the CPU between steps; speed and damping are uploaded only when the medium
// changes.
type openCLIntegrator struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	currBuf    *cl.MemObject
	prevBuf    *cl.MemObject
	nextBuf    *cl.MemObject
	speedBuf   *cl.MemObject
	dampBuf    *cl.MemObject
	weightsBuf *cl.MemObject
	width      int
	height     int
	deviceName string
	mediumGen  uint64
	synced     bool

	// fallback takes over after the first device error.
	fallback *cpuIntegrator
}

const waveKernelSource = `__kernel void wave_step(
    const int width,
    const int height,
    const float dt,
    __constant float* weights,
    __global const float* curr,
    __global const float* prev,
    __global const float* speed,
    __global const float* damping,
    __global float* next_buffer)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    float lap = 0.0f;
    for (int dy = -1; dy <= 1; dy++) {
        int sy = y - dy;
        if (sy < 0 || sy >= height) {
            continue;
        }
        for (int dx = -1; dx <= 1; dx++) {
            int sx = x - dx;
            if (sx < 0 || sx >= width) {
                continue;
            }
            lap += weights[(1 + dy) * 3 + (1 + dx)] * curr[sy * width + sx];
        }
    }
    float u = curr[idx];
    float cdt = speed[idx] * dt;
    next_buffer[idx] = u + (u - prev[idx]) * damping[idx] + lap * (cdt * cdt);
}`

func newOpenCLIntegrator(width, height int, k *Kernel) (*openCLIntegrator, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &openCLIntegrator{width: width, height: height, deviceName: device.Name()}
	if err := s.init(device, k); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (s *openCLIntegrator) init(device *cl.Device, k *Kernel) error {
	var err error
	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{waveKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("wave_step"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	byteSize := s.width * s.height * int(unsafe.Sizeof(float32(0)))
	alloc := func(flags cl.MemFlag, size int, label string) (*cl.MemObject, error) {
		buf, err := s.context.CreateEmptyBuffer(flags, size)
		if err != nil {
			return nil, fmt.Errorf("allocating %s buffer: %w", label, err)
		}
		return buf, nil
	}
	if s.currBuf, err = alloc(cl.MemReadOnly, byteSize, "current"); err != nil {
		return err
	}
	if s.prevBuf, err = alloc(cl.MemReadOnly, byteSize, "previous"); err != nil {
		return err
	}
	if s.speedBuf, err = alloc(cl.MemReadOnly, byteSize, "speed"); err != nil {
		return err
	}
	if s.dampBuf, err = alloc(cl.MemReadOnly, byteSize, "damping"); err != nil {
		return err
	}
	if s.nextBuf, err = alloc(cl.MemWriteOnly, byteSize, "next"); err != nil {
		return err
	}
	if s.weightsBuf, err = alloc(cl.MemReadOnly, 9*int(unsafe.Sizeof(float32(0))), "weights"); err != nil {
		return err
	}
	weights := make([]float32, 0, 9)
	for _, row := range k {
		weights = append(weights, row[:]...)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.weightsBuf, true, 0, weights, nil); err != nil {
		return fmt.Errorf("writing weights buffer: %w", err)
	}
	if err := s.kernel.SetArgs(
		int32(s.width),
		int32(s.height),
		float32(1),
		s.weightsBuf,
		s.currBuf,
		s.prevBuf,
		s.speedBuf,
		s.dampBuf,
		s.nextBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	return nil
}

func (s *openCLIntegrator) step(f *Field, dt float32) error {
	if !s.synced || s.mediumGen != f.mediumGen {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.speedBuf, false, 0, f.speed.Data, nil); err != nil {
			return fmt.Errorf("writing speed buffer: %w", err)
		}
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.dampBuf, false, 0, f.damping.Data, nil); err != nil {
			return fmt.Errorf("writing damping buffer: %w", err)
		}
		s.mediumGen = f.mediumGen
		s.synced = true
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.currBuf, false, 0, f.curr.Data, nil); err != nil {
		return fmt.Errorf("writing current buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.prevBuf, false, 0, f.prev.Data, nil); err != nil {
		return fmt.Errorf("writing previous buffer: %w", err)
	}
	if err := s.kernel.SetArgFloat32(2, dt); err != nil {
		return fmt.Errorf("setting dt: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{s.width * s.height}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.nextBuf, true, 0, f.next.Data, nil); err != nil {
		return fmt.Errorf("reading next buffer: %w", err)
	}
	return nil
}

func (s *openCLIntegrator) advance(f *Field, k *Kernel, dt float32) {
	if s.fallback == nil {
		err := s.step(f, dt)
		if err == nil {
			return
		}
		log.Printf("OpenCL step failed, continuing on CPU: %v", err)
		s.fallback = newCPUIntegrator(0, f.height)
	}
	s.fallback.advance(f, k, dt)
}

func (s *openCLIntegrator) close() {
	for _, buf := range []**cl.MemObject{&s.weightsBuf, &s.nextBuf, &s.dampBuf, &s.speedBuf, &s.prevBuf, &s.currBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
	if s.fallback != nil {
		s.fallback.close()
		s.fallback = nil
	}
}

// DeviceName reports the OpenCL device the integrator runs on.
func (s *openCLIntegrator) DeviceName() string {
	return s.deviceName
}
