package main

import "flag"

// Command-line flags. Each one overrides the matching WAVESIM_* environment
// variable when it is set explicitly.
var (
	widthFlag  = flag.Int("width", 800, "grid columns")
	heightFlag = flag.Int("height", 1200, "grid rows")

	// windowScaleFlag sizes the window relative to the grid.
	windowScaleFlag = flag.Float64("scale", 0.6, "window size as a multiple of the grid size")

	tpsFlag   = flag.Int("tps", 20, "driver ticks per second")
	stepsFlag = flag.Int("steps", 1, "inject+advance steps per tick")

	dtFlag              = flag.Float64("dt", 1, "simulation timestep; should divide the churn period")
	borderFlag          = flag.Int("border", 32, "absorbing border thickness in cells")
	opacityFlag         = flag.Float64("opacity", 0.9, "source opacity in [0,1]; 1 makes sources inert")
	globalDampeningFlag = flag.Float64("global-dampening", 1, "upper clamp for per-cell damping")
	churnPeriodFlag     = flag.Float64("churn-period", 10, "simulated time between source churn events (0 disables)")

	sourcesFlag      = flag.Int("sources", 1500, "number of sources seeded in the initial disk")
	amplitudeFlag    = flag.Float64("amplitude", 100, "source amplitude")
	sourcePeriodFlag = flag.Float64("source-period", 30, "source oscillation period in time units")
	seedFlag         = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")

	// backendFlag selects the stencil integrator: direct, fft or opencl.
	backendFlag = flag.String("backend", "direct", "integrator backend: direct, fft or opencl (needs -tags opencl)")
	workersFlag = flag.Int("workers", 0, "CPU stencil workers (0 uses every CPU)")

	headlessFlag  = flag.Bool("headless", false, "run without a window")
	framesFlag    = flag.Int("frames", 300, "ticks to run in headless mode")
	recordFlag    = flag.String("record", "", "write an MJPEG AVI of the field to this path (headless)")
	plotFlag      = flag.String("plot", "", "write a PNG plot of field energy to this path (headless)")
	frameRateFlag = flag.Int("frame-rate", 20, "frame rate of the recording")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this path")

	// enableAudioFlag toggles audio output driven by the listening cell at the grid center.
	enableAudioFlag = flag.Bool("enable-audio", false, "play the amplitude at the grid center as audio")

	// debugFlag enables the overlay and the hotkeys.
	debugFlag = flag.Bool("debug", false, "show the simulation overlay and source markers")
)
