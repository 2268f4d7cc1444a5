package main

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/mrmartin/wavesim/internal/config"
	"github.com/mrmartin/wavesim/internal/render"
	"github.com/mrmartin/wavesim/internal/wave"
)

// Game drives the simulator at a fixed tick rate and renders its field.
type Game struct {
	sim    *wave.Simulator
	levels render.Levels
	pixels []byte

	stepsPerTick    int
	tps             int
	paused          bool
	debug           bool
	lastSimDuration time.Duration

	listenX int
	listenY int

	audioCtx    *audio.Context
	audioStream *listenAudioStream
	audioPlayer *audio.Player
}

// newGame wires a simulator into the viewer and optionally starts audio
// playback of the listening cell.
func newGame(cfg config.Config, sim *wave.Simulator) *Game {
	g := &Game{
		sim:          sim,
		pixels:       make([]byte, sim.Width()*sim.Height()*4),
		stepsPerTick: cfg.StepsPerTick,
		tps:          cfg.TPS,
		debug:        cfg.Debug,
		listenX:      sim.Width() / 2,
		listenY:      sim.Height() / 2,
	}
	if cfg.EnableAudio {
		g.audioCtx = audio.NewContext(audioSampleRate)
		g.audioStream = newListenAudioStream(g.stepsPerSecond())
		if player, err := g.audioCtx.NewPlayer(g.audioStream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioPlayerBufferLatency)
			g.audioPlayer.Play()
		}
	}
	return g
}

// Update runs one driver tick: controls, then inject and advance for each
// configured step, then level tracking and audio.
func (g *Game) Update() error {
	g.handleControls()

	if !g.paused {
		simStart := time.Now()
		for i := 0; i < g.stepsPerTick; i++ {
			g.sim.Step()
			g.pushListenSample()
		}
		g.lastSimDuration = time.Since(simStart)
	}

	g.levels.Observe(g.sim.ReadField())
	return nil
}

// pushListenSample queues the listening cell's amplitude, normalized by the
// display level seen so far.
func (g *Game) pushListenSample() {
	if g.audioStream == nil {
		return
	}
	v := g.sim.ReadField().At(g.listenX, g.listenY)
	m := g.levels.Max()
	if abs := float32(math.Abs(float64(v))); abs > m {
		m = abs
	}
	if m == 0 {
		g.audioStream.SetSample(0)
		return
	}
	g.audioStream.SetSample(v / m)
}

func (g *Game) stepsPerSecond() float64 {
	return float64(g.tps * g.stepsPerTick)
}

// Close stops audio playback.
func (g *Game) Close() {
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
		g.audioPlayer = nil
	}
}
