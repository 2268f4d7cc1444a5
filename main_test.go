package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrmartin/wavesim/internal/config"
	"github.com/mrmartin/wavesim/internal/wave"
)

func smallConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"WAVESIM_WIDTH":   "40",
		"WAVESIM_HEIGHT":  "30",
		"WAVESIM_SOURCES": "25",
		"WAVESIM_SEED":    "7",
		"WAVESIM_WORKERS": "2",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	return cfg
}

func TestNewSimulatorSeedsDisk(t *testing.T) {
	cfg := smallConfig(t)
	sim, err := newSimulator(cfg)
	if err != nil {
		t.Fatalf("newSimulator() error = %v", err)
	}
	defer sim.Close()

	if got := sim.SourceCount(); got != cfg.Sources {
		t.Fatalf("SourceCount() = %d, want %d", got, cfg.Sources)
	}
	cx, cy, r := float64(cfg.Width/2), float64(cfg.Height/2), cfg.SeedRadius()
	for i, src := range sim.Sources() {
		dx, dy := src.X-cx, src.Y-cy
		if dx*dx+dy*dy > r*r+1e-9 {
			t.Fatalf("source %d at (%v, %v) outside seed disk", i, src.X, src.Y)
		}
		if src.Amplitude != cfg.SourceAmplitude {
			t.Fatalf("source %d amplitude = %v, want %v", i, src.Amplitude, cfg.SourceAmplitude)
		}
	}
	if sim.Backend() != wave.BackendDirect {
		t.Fatalf("Backend() = %v, want %v", sim.Backend(), wave.BackendDirect)
	}
}

func TestNewSimulatorRejectsBackend(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Backend = "quantum"
	if _, err := newSimulator(cfg); err == nil {
		t.Fatal("newSimulator() error = nil, want unknown backend error")
	}
}

func TestAdjustStepsPerTickClamps(t *testing.T) {
	g := &Game{stepsPerTick: minStepsPerTick}
	g.adjustStepsPerTick(-stepsPerTickStep)
	if g.stepsPerTick != minStepsPerTick {
		t.Fatalf("stepsPerTick = %d, want %d", g.stepsPerTick, minStepsPerTick)
	}
	g.stepsPerTick = maxStepsPerTick
	g.adjustStepsPerTick(stepsPerTickStep)
	if g.stepsPerTick != maxStepsPerTick {
		t.Fatalf("stepsPerTick = %d, want %d", g.stepsPerTick, maxStepsPerTick)
	}
}

func pcmFrame(v float32) [4]byte {
	s := int16(v * 32767)
	return [4]byte{byte(s), byte(s >> 8), byte(s), byte(s >> 8)}
}

func TestListenAudioStreamInterpolatesSamples(t *testing.T) {
	// Two output frames per pushed sample.
	s := newListenAudioStream(audioSampleRate / 2)
	s.SetSample(0.5)
	s.SetSample(-0.25)
	if got := s.Queued(); got != 2 {
		t.Fatalf("Queued() = %d, want 2", got)
	}

	// Mirror the DC tracker to get the values actually queued.
	var dc float32
	dc += 0.001 * (0.5 - dc)
	first := float32(0.5) - dc
	dc += 0.001 * (-0.25 - dc)
	second := float32(-0.25) - dc

	buf := make([]byte, 5*4+2)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 5*4 {
		t.Fatalf("Read() = %d bytes, want %d", n, 5*4)
	}
	frame := func(i int) [4]byte {
		var f [4]byte
		copy(f[:], buf[i*4:i*4+4])
		return f
	}
	if got, want := frame(0), pcmFrame(0); got != want {
		t.Fatalf("frame 0 = %v, want %v", got, want)
	}
	if got, want := frame(2), pcmFrame(first); got != want {
		t.Fatalf("frame 2 = %v, want first sample %v", got, want)
	}
	if got, want := frame(4), pcmFrame(second); got != want {
		t.Fatalf("frame 4 = %v, want second sample %v", got, want)
	}
	if frame(2) == frame(4) {
		t.Fatalf("distinct samples produced identical frames %v", frame(2))
	}
	if got := s.Queued(); got != 0 {
		t.Fatalf("Queued() after read = %d, want 0", got)
	}

	// An exhausted queue holds the last sample.
	n, _ = s.Read(buf[:8])
	if n != 8 || frame(0) != pcmFrame(second) || frame(1) != pcmFrame(second) {
		t.Fatalf("held frames = %v, want %v", buf[:8], pcmFrame(second))
	}
}

func TestListenAudioStreamClampsAndDropsOldest(t *testing.T) {
	s := newListenAudioStream(audioSampleRate)
	for i := 0; i < listenRingSize+5; i++ {
		s.SetSample(3)
	}
	if got := s.Queued(); got != listenRingSize {
		t.Fatalf("Queued() = %d, want %d", got, listenRingSize)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < s.size; i++ {
		if v := s.ring[(s.head+i)%listenRingSize]; v > 1 {
			t.Fatalf("queued sample %d = %v, want <= 1", i, v)
		}
	}
}

func TestLoadConfigFlagOverridesInvalidEnv(t *testing.T) {
	t.Setenv("WAVESIM_WIDTH", "0")
	if err := flag.Set("width", "64"); err != nil {
		t.Fatalf("flag.Set() error = %v", err)
	}
	t.Cleanup(func() { _ = flag.Set("width", "800") })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Width != 64 {
		t.Fatalf("Width = %d, want 64", cfg.Width)
	}
}

func TestLoadConfigValidatesMergedResult(t *testing.T) {
	t.Setenv("WAVESIM_DT", "-1")
	if _, err := loadConfig(); err == nil {
		t.Fatal("loadConfig() error = nil, want dt rejection")
	}
}

func TestStartCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	stop, err := startCPUProfile(path)
	if err != nil {
		t.Fatalf("startCPUProfile() error = %v", err)
	}
	stop()
	stop()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("profile is empty")
	}
}

func TestStartCPUProfileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cpu.pprof")
	_, err := startCPUProfile(path)
	if err == nil {
		t.Fatal("startCPUProfile() error = nil, want create failure")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error %q does not name %s", err, path)
	}
}
