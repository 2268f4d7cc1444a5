package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var (
	sourceColor = color.RGBA{255, 0, 0, 255}
	listenColor  = color.RGBA{0, 200, 255, 255}
)

// Draw renders the field with levels [0, max seen] and the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.levels.Pixels(g.pixels, g.sim.ReadField())
	screen.WritePixels(g.pixels)

	if !g.debug {
		return
	}
	w, h := g.sim.Width(), g.sim.Height()
	for _, src := range g.sim.Sources() {
		x, y := src.Cell()
		drawMarker(screen, x, y, w, h, sourceColor)
	}
	drawMarker(screen, g.listenX, g.listenY, w, h, listenColor)

	fps := ebiten.ActualFPS()
	tps := ebiten.ActualTPS()
	if tps < 0 {
		tps = 0
	}
	simMS := g.lastSimDuration.Seconds() * 1000
	state := "running"
	if g.paused {
		state = "paused"
	}
	debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f (%s)\nSteps/tick: %d (+/-)\nt: %.0f  sources: %d\nLevel max: %.2f\nSim: %.2f ms",
		fps, tps, state, g.stepsPerTick, g.sim.Time(), g.sim.SourceCount(), g.levels.Max(), simMS)
	ebitenutil.DebugPrint(screen, debugMsg)
}

// Layout reports the logical screen size used by Ebiten: one pixel per cell.
func (g *Game) Layout(_, _ int) (int, int) { return g.sim.Width(), g.sim.Height() }

// drawMarker plots the marker footprint centred on (cx, cy), clipped to the grid.
func drawMarker(screen *ebiten.Image, cx, cy, w, h int, clr color.Color) {
	for _, offset := range markerFootprint {
		x := cx + offset.dx
		y := cy + offset.dy
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		screen.Set(x, y, clr)
	}
}

type gridOffset struct {
	dx int
	dy int
}

const markerRadius = 1

var markerFootprint = precomputeFootprint(markerRadius)

// precomputeFootprint lists the offsets inside a disc of the given radius.
func precomputeFootprint(radius int) []gridOffset {
	footprint := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				footprint = append(footprint, gridOffset{dx: x, dy: y})
			}
		}
	}
	return footprint
}
