package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleControls processes the viewer hotkeys: space pauses, R resets the
// simulated time and display levels, C forces a churn, +/- change the steps
// run per tick and D toggles the overlay.
func (g *Game) handleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.ResetTime()
		g.levels.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.Churn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustStepsPerTick(-stepsPerTickStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustStepsPerTick(stepsPerTickStep)
	}
}

// adjustStepsPerTick clamps the per-tick step count within bounds.
func (g *Game) adjustStepsPerTick(delta int) {
	g.stepsPerTick += delta
	if g.stepsPerTick < minStepsPerTick {
		g.stepsPerTick = minStepsPerTick
	} else if g.stepsPerTick > maxStepsPerTick {
		g.stepsPerTick = maxStepsPerTick
	}
	if g.audioStream != nil {
		g.audioStream.SetStepRate(g.stepsPerSecond())
	}
}
