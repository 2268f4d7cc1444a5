package wave

import (
	"math"
	"math/rand"
	"testing"
)

func TestDefaultKernelSumsToZero(t *testing.T) {
	if s := DefaultKernel.Sum(); math.Abs(float64(s)) > 1e-6 {
		t.Fatalf("kernel sum = %v, want 0", s)
	}
}

func TestZeroFieldStaysZero(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(24, 18))
	for i := 0; i < 60; i++ {
		sim.AdvanceField()
	}
	for i, v := range sim.ReadField().Data {
		if v != 0 {
			t.Fatalf("amplitude[%d] = %v after 60 steps, want 0", i, v)
		}
	}
	if got := sim.Time(); got != 60 {
		t.Fatalf("time = %v, want 60", got)
	}
}

func TestAdvanceImpulse(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(5, 5))
	if err := sim.SetDampingField(nil, 0); err != nil {
		t.Fatalf("SetDampingField: %v", err)
	}
	sim.ReadField().Set(2, 2, 1)
	sim.AdvanceField()

	u := sim.ReadField()
	tests := []struct {
		x, y int
		want float32
	}{
		{2, 2, 1}, // 1 + (1-0)*1 - 1
		{1, 2, 0.2},
		{3, 2, 0.2},
		{2, 1, 0.2},
		{2, 3, 0.2},
		{1, 1, 0.05},
		{3, 3, 0.05},
		{1, 3, 0.05},
		{3, 1, 0.05},
		{0, 0, 0},
		{4, 2, 0},
	}
	for _, tc := range tests {
		if got := u.At(tc.x, tc.y); math.Abs(float64(got-tc.want)) > 1e-6 {
			t.Fatalf("u(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if got := sim.Previous().At(2, 2); got != 1 {
		t.Fatalf("prev(2,2) = %v, want 1", got)
	}
}

func TestWaveSpeedScalesLaplacian(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(5, 5))
	if err := sim.SetDampingField(nil, 0); err != nil {
		t.Fatalf("SetDampingField: %v", err)
	}
	if err := sim.SetWaveSpeedFromRefractiveIndex(NewGridFilled(5, 5, 2)); err != nil {
		t.Fatalf("SetWaveSpeedFromRefractiveIndex: %v", err)
	}
	sim.ReadField().Set(2, 2, 1)
	sim.AdvanceField()
	// (c*dt)^2 = 0.25
	if got := sim.ReadField().At(1, 2); math.Abs(float64(got-0.05)) > 1e-6 {
		t.Fatalf("u(1,2) = %v, want 0.05", got)
	}
}

func randomField(rng *rand.Rand, f *Field) {
	for i := range f.curr.Data {
		f.curr.Data[i] = rng.Float32()*2 - 1
		f.prev.Data[i] = rng.Float32()*2 - 1
		f.speed.Data[i] = 0.1 + 0.9*rng.Float32()
		f.damping.Data[i] = rng.Float32()
	}
}

func TestStepRowsMatchesNaiveStencil(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := newField(11, 9)
	randomField(rng, f)
	k := DefaultKernel
	stepRows(f, &k, 0.7, 0, f.height)

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			i := y*f.width + x
			lap := laplacianAt(f.curr, &k, x, y)
			want := leapfrog(f.curr.Data[i], f.prev.Data[i], f.damping.Data[i], f.speed.Data[i], lap, 0.7)
			if got := f.next.Data[i]; math.Abs(float64(got-want)) > 1e-5 {
				t.Fatalf("next(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAsymmetricKernelIsConvolved(t *testing.T) {
	f := newField(3, 3)
	f.curr.Set(1, 1, 1)
	k := Kernel{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	// The impulse response of a convolution is the kernel itself.
	if got := laplacianAt(f.curr, &k, 0, 0); got != 1 {
		t.Fatalf("conv at (0,0) = %v, want 1", got)
	}
	if got := laplacianAt(f.curr, &k, 2, 2); got != 0 {
		t.Fatalf("conv at (2,2) = %v, want 0", got)
	}
	f.prev.CopyFrom(f.curr)
	stepRows(f, &k, 1, 0, 3)
	if got := f.next.At(0, 0); got != 1 {
		t.Fatalf("next(0,0) = %v, want 1", got)
	}
	if got := f.next.At(2, 2); got != 0 {
		t.Fatalf("next(2,2) = %v, want 0", got)
	}
}

func TestParallelPoolMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	serial := newField(37, 29)
	randomField(rng, serial)
	parallel := newField(37, 29)
	for _, pair := range [][2]*Grid{
		{parallel.curr, serial.curr},
		{parallel.prev, serial.prev},
		{parallel.speed, serial.speed},
		{parallel.damping, serial.damping},
	} {
		pair[0].CopyFrom(pair[1])
	}

	k := DefaultKernel
	one := newStencilPool(1, serial.height)
	many := newStencilPool(4, parallel.height)
	defer one.close()
	defer many.close()

	for step := 0; step < 5; step++ {
		one.advance(serial, &k, 1)
		serial.swap()
		many.advance(parallel, &k, 1)
		parallel.swap()
	}
	for i := range serial.curr.Data {
		if serial.curr.Data[i] != parallel.curr.Data[i] {
			t.Fatalf("cell %d: serial %v, parallel %v", i, serial.curr.Data[i], parallel.curr.Data[i])
		}
	}
}

func TestFFTBackendMatchesDirect(t *testing.T) {
	cfgDirect := DefaultConfig(13, 9)
	cfgDirect.BorderThickness = 3
	cfgFFT := cfgDirect
	cfgFFT.Backend = BackendFFT

	direct := newTestSimulator(t, cfgDirect)
	fft := newTestSimulator(t, cfgFFT)

	rng := rand.New(rand.NewSource(3))
	for i := range direct.ReadField().Data {
		v := rng.Float32()*2 - 1
		direct.ReadField().Data[i] = v
		fft.ReadField().Data[i] = v
	}
	for step := 0; step < 4; step++ {
		direct.AdvanceField()
		fft.AdvanceField()
	}
	for i, want := range direct.ReadField().Data {
		if got := fft.ReadField().Data[i]; math.Abs(float64(got-want)) > 1e-4 {
			t.Fatalf("cell %d: fft %v, direct %v", i, got, want)
		}
	}
}

func TestAssignRowSpans(t *testing.T) {
	tests := []struct {
		workers, height int
		want            int
	}{
		{1, 10, 1},
		{4, 10, 4},
		{3, 10, 3},
		{16, 5, 5},
		{0, 7, 1},
	}
	for _, tc := range tests {
		spans := assignRowSpans(tc.workers, tc.height)
		if len(spans) != tc.want {
			t.Fatalf("assignRowSpans(%d, %d) = %d spans, want %d", tc.workers, tc.height, len(spans), tc.want)
		}
		next := 0
		for _, sp := range spans {
			if sp.start != next || sp.end <= sp.start {
				t.Fatalf("assignRowSpans(%d, %d) span %+v not contiguous", tc.workers, tc.height, sp)
			}
			next = sp.end
		}
		if next != tc.height {
			t.Fatalf("assignRowSpans(%d, %d) covers %d rows", tc.workers, tc.height, next)
		}
	}
}

func TestParseBackend(t *testing.T) {
	tests := map[string]Backend{
		"":       BackendDirect,
		"direct": BackendDirect,
		" FFT ":  BackendFFT,
		"opencl": BackendOpenCL,
	}
	for in, want := range tests {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseBackend("cuda"); err == nil {
		t.Fatal("ParseBackend(cuda) succeeded, want error")
	}
}
