package wave

import (
	"fmt"
	"math"
)

// Defaults for a new simulator.
const (
	DefaultGlobalDampening = 1.0
	DefaultSourceOpacity   = 0.9
	DefaultDt              = 1.0
	DefaultBorderThickness = 32
	DefaultChurnPeriod     = 10.0
	DefaultSourceAmplitude = 100.0
)

// DefaultSourceFrequency is the angular frequency of churned-in sources, one
// cycle every 30 time units.
var DefaultSourceFrequency = 2 * math.Pi / 30

// Config holds the construction parameters of a Simulator. Start from
// DefaultConfig: a zero GlobalDampening or SourceOpacity is taken literally
// (no momentum carried, sources fully replace the field), so a bare
// Config{Width, Height} is not the default setup. Only a non-positive Dt,
// which cannot advance time, is replaced by DefaultDt.
type Config struct {
	Width  int
	Height int

	GlobalDampening float32
	SourceOpacity   float32
	Dt              float64
	BorderThickness int

	// ChurnPeriod is the simulated time between churn events. Zero disables
	// churn. Dt should divide it evenly or the trigger may never fire.
	ChurnPeriod float64
	Churn       ChurnDisk

	Backend Backend
	// Workers bounds the CPU stencil goroutines; zero uses every CPU.
	Workers int
	// Rand drives churn. Nil selects a time-seeded generator.
	Rand Rand
}

// DefaultConfig returns the reference setup for a width×height grid: unit wave
// speed, full damping with a 32-ring border, opacity 0.9, dt 1 and churn every
// 10 time units inside a disk at the grid center of radius (w+h)/20.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:           width,
		Height:          height,
		GlobalDampening: DefaultGlobalDampening,
		SourceOpacity:   DefaultSourceOpacity,
		Dt:              DefaultDt,
		BorderThickness: DefaultBorderThickness,
		ChurnPeriod:     DefaultChurnPeriod,
		Churn: ChurnDisk{
			CenterX:   float64(width / 2),
			CenterY:   float64(height / 2),
			Radius:    float64((width + height) / 20),
			Amplitude: DefaultSourceAmplitude,
			Frequency: DefaultSourceFrequency,
		},
		Backend: BackendDirect,
	}
}

// Simulator owns one wave field, its medium and its source population. It is
// not safe for concurrent use; one driver calls InjectSources and AdvanceField
// per tick and the renderer reads the field between calls.
type Simulator struct {
	field   *Field
	kernel  Kernel
	integ   integrator
	sources []Source
	rng     Rand

	globalDampening float32
	sourceOpacity   float32
	dt              float64
	churnPeriod     float64
	churn           ChurnDisk
	backend         Backend
}

// New constructs a simulator from cfg.
func New(cfg Config) (*Simulator, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidSize)
	}
	if cfg.BorderThickness < 0 {
		cfg.BorderThickness = 0
	}
	if !(cfg.Dt > 0) {
		cfg.Dt = DefaultDt
	}
	s := &Simulator{
		field:           newField(cfg.Width, cfg.Height),
		kernel:          DefaultKernel,
		rng:             cfg.Rand,
		globalDampening: cfg.GlobalDampening,
		sourceOpacity:   clampFloat32(cfg.SourceOpacity, 0, 1),
		dt:              cfg.Dt,
		churnPeriod:     cfg.ChurnPeriod,
		churn:           cfg.Churn,
		backend:         cfg.Backend,
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	if s.globalDampening < 0 {
		s.globalDampening = 0
	}

	switch cfg.Backend {
	case BackendDirect, "":
		s.backend = BackendDirect
		s.integ = newCPUIntegrator(cfg.Workers, cfg.Height)
	case BackendFFT:
		s.integ = newFFTIntegrator(cfg.Width, cfg.Height, &s.kernel)
	case BackendOpenCL:
		gpu, err := newOpenCLIntegrator(cfg.Width, cfg.Height, &s.kernel)
		if err != nil {
			return nil, fmt.Errorf("opencl backend: %w", err)
		}
		s.integ = gpu
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if err := s.SetDampingField(nil, cfg.BorderThickness); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// NewDefault constructs a width×height simulator with DefaultConfig.
func NewDefault(width, height int) (*Simulator, error) {
	return New(DefaultConfig(width, height))
}

// Close releases the integrator's workers or device resources.
func (s *Simulator) Close() {
	if s.integ != nil {
		s.integ.close()
		s.integ = nil
	}
}

// Width returns the number of grid columns.
func (s *Simulator) Width() int { return s.field.width }

// Height returns the number of grid rows.
func (s *Simulator) Height() int { return s.field.height }

// Backend reports the integrator in use.
func (s *Simulator) Backend() Backend { return s.backend }

// DeviceName reports the OpenCL device, or "" for CPU backends.
func (s *Simulator) DeviceName() string {
	if gpu, ok := s.integ.(*openCLIntegrator); ok {
		return gpu.DeviceName()
	}
	return ""
}

// ReadField returns the current amplitude grid. The grid is a view into the
// simulator and is only valid until the next mutating call.
func (s *Simulator) ReadField() *Grid { return s.field.curr }

// Previous returns the amplitude grid of the previous timestep.
func (s *Simulator) Previous() *Grid { return s.field.prev }

// WaveSpeed returns the per-cell propagation speed grid.
func (s *Simulator) WaveSpeed() *Grid { return s.field.speed }

// Damping returns the per-cell velocity damping grid.
func (s *Simulator) Damping() *Grid { return s.field.damping }

// Time returns the elapsed simulated time.
func (s *Simulator) Time() float64 { return s.field.t }

// ResetTime sets the simulated time back to zero without touching the field.
func (s *Simulator) ResetTime() { s.field.t = 0 }

// Dt returns the timestep.
func (s *Simulator) Dt() float64 { return s.dt }

// SetDt changes the timestep. Stability requires wave_speed*dt <= 1.
func (s *Simulator) SetDt(dt float64) { s.dt = dt }

// SourceOpacity returns the injection blend factor.
func (s *Simulator) SourceOpacity() float32 { return s.sourceOpacity }

// SetSourceOpacity sets the injection blend factor, clamped to [0, 1].
func (s *Simulator) SetSourceOpacity(o float32) { s.sourceOpacity = clampFloat32(o, 0, 1) }

// GlobalDampening returns the upper clamp for damping values.
func (s *Simulator) GlobalDampening() float32 { return s.globalDampening }

// SetDampingField rebuilds the damping grid from m, or from global_dampening
// when m is nil, then carves a border of the given thickness. A map of the
// wrong shape fails with ErrDimensionMismatch and leaves damping unchanged.
func (s *Simulator) SetDampingField(m *Grid, borderThickness int) error {
	if err := buildDamping(s.field.damping, m, s.globalDampening, borderThickness); err != nil {
		return fmt.Errorf("set damping field: %w", err)
	}
	s.field.mediumChanged()
	return nil
}

// SetWaveSpeedFromRefractiveIndex sets wave_speed = 1/clip(n, 1, 10).
func (s *Simulator) SetWaveSpeedFromRefractiveIndex(n *Grid) error {
	if err := buildWaveSpeed(s.field.speed, n); err != nil {
		return fmt.Errorf("set refractive index: %w", err)
	}
	s.field.mediumChanged()
	return nil
}

// SetSources replaces the whole population from (x, y, phase, amplitude,
// frequency) rows. Any row of the wrong width fails with ErrInvalidShape and
// leaves the population unchanged.
func (s *Simulator) SetSources(rows [][]float64) error {
	sources, err := sourcesFromRows(rows)
	if err != nil {
		return fmt.Errorf("set sources: %w", err)
	}
	s.sources = sources
	return nil
}

// SetSourceList replaces the population with a copy of sources.
func (s *Simulator) SetSourceList(sources []Source) {
	s.sources = append(make([]Source, 0, len(sources)), sources...)
}

// Sources returns a copy of the current population.
func (s *Simulator) Sources() []Source {
	return append([]Source(nil), s.sources...)
}

// SourceCount returns the population size.
func (s *Simulator) SourceCount() int { return len(s.sources) }

// InjectSources blends every source's drive at the current time into the
// field.
func (s *Simulator) InjectSources() {
	injectSources(s.field.curr, s.sources, s.sourceOpacity, s.field.t)
}

// AdvanceField moves the field forward by one timestep and, when the new time
// lands on a multiple of the churn period, churns the source population.
func (s *Simulator) AdvanceField() {
	s.integ.advance(s.field, &s.kernel, float32(s.dt))
	s.field.swap()
	s.field.t += s.dt
	if s.churnPeriod > 0 && math.Mod(s.field.t, s.churnPeriod) == 0 {
		s.Churn()
	}
}

// Churn adds one source sampled from the churn disk and then removes one
// source chosen uniformly from the enlarged population.
func (s *Simulator) Churn() {
	s.sources = churnSources(s.sources, s.churn, s.rng)
}

// Step runs one driver tick: inject sources, then advance the field.
func (s *Simulator) Step() {
	s.InjectSources()
	s.AdvanceField()
}
