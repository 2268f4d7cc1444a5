package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mrmartin/wavesim/internal/config"
	"github.com/mrmartin/wavesim/internal/wave"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := run(); err != nil {
		log.Fatalf("wavesim: %v", err)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if cfg.CPUProfile != "" {
		stop, err := startCPUProfile(cfg.CPUProfile)
		if err != nil {
			return err
		}
		defer stop()
	}

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	defer sim.Close()
	if name := sim.DeviceName(); name != "" {
		log.Printf("OpenCL solver enabled (device: %s)", name)
	}
	log.Printf("Simulating %dx%d grid with %d sources (%s backend)",
		sim.Width(), sim.Height(), sim.SourceCount(), sim.Backend())

	if cfg.Headless {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runHeadless(ctx, cfg, sim)
	}

	g := newGame(cfg, sim)
	defer g.Close()
	ebiten.SetWindowSize(int(float64(cfg.Width)*cfg.WindowScale), int(float64(cfg.Height)*cfg.WindowScale))
	ebiten.SetWindowTitle("Wave Simulator 2D")
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

// newSimulator builds the solver and seeds the initial source disk at the
// grid center.
func newSimulator(cfg config.Config) (*wave.Simulator, error) {
	backend, err := wave.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	rng := wave.NewRand(cfg.Seed)
	frequency := 2 * math.Pi / cfg.SourcePeriod

	wcfg := wave.DefaultConfig(cfg.Width, cfg.Height)
	wcfg.Dt = cfg.Dt
	wcfg.BorderThickness = cfg.BorderThickness
	wcfg.SourceOpacity = float32(cfg.SourceOpacity)
	wcfg.GlobalDampening = float32(cfg.GlobalDampening)
	wcfg.ChurnPeriod = cfg.ChurnPeriod
	wcfg.Churn.Amplitude = cfg.SourceAmplitude
	wcfg.Churn.Frequency = frequency
	wcfg.Backend = backend
	wcfg.Workers = cfg.Workers
	wcfg.Rand = rng

	sim, err := wave.New(wcfg)
	if err != nil {
		return nil, fmt.Errorf("creating simulator: %w", err)
	}
	cx, cy := float64(cfg.Width/2), float64(cfg.Height/2)
	points := wave.PointsInDisk(rng, cx, cy, cfg.SeedRadius(), cfg.Sources)
	sim.SetSourceList(wave.SourcesFromPoints(rng, points, cfg.SourceAmplitude, frequency))
	return sim, nil
}
