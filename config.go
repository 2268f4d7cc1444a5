package main

import (
	"flag"
	"time"

	"github.com/mrmartin/wavesim/internal/config"
)

// Viewer and audio constants.
const (
	stepsPerTickStep         = 1
	minStepsPerTick          = 1
	maxStepsPerTick          = 64
	audioSampleRate          = 48000
	audioPlayerBufferLatency = 80 * time.Millisecond
	headlessLogInterval      = 50
	plotWidth, plotHeight    = 800, 400
	recordFrameQueue         = 4
)

// loadConfig reads the environment, applies any flags given on the command
// line and validates the merged result.
func loadConfig() (config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(&cfg)
	return cfg, cfg.Validate()
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *widthFlag
		case "height":
			cfg.Height = *heightFlag
		case "scale":
			cfg.WindowScale = *windowScaleFlag
		case "tps":
			cfg.TPS = *tpsFlag
		case "steps":
			cfg.StepsPerTick = *stepsFlag
		case "dt":
			cfg.Dt = *dtFlag
		case "border":
			cfg.BorderThickness = *borderFlag
		case "opacity":
			cfg.SourceOpacity = *opacityFlag
		case "global-dampening":
			cfg.GlobalDampening = *globalDampeningFlag
		case "churn-period":
			cfg.ChurnPeriod = *churnPeriodFlag
		case "sources":
			cfg.Sources = *sourcesFlag
		case "amplitude":
			cfg.SourceAmplitude = *amplitudeFlag
		case "source-period":
			cfg.SourcePeriod = *sourcePeriodFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "backend":
			cfg.Backend = *backendFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "headless":
			cfg.Headless = *headlessFlag
		case "frames":
			cfg.Frames = *framesFlag
		case "record":
			cfg.RecordPath = *recordFlag
		case "plot":
			cfg.PlotPath = *plotFlag
		case "frame-rate":
			cfg.FrameRate = *frameRateFlag
		case "cpuprofile":
			cfg.CPUProfile = *cpuProfileFlag
		case "enable-audio":
			cfg.EnableAudio = *enableAudioFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})
}
