// Package render maps wave amplitude grids to display pixels.
package render

import (
	"image"

	"github.com/mrmartin/wavesim/internal/wave"
)

// Levels tracks the largest amplitude seen so far and uses it as the white
// point. Values at or below zero render black.
type Levels struct {
	max float32
}

// Observe folds the grid's maximum into the running level.
func (l *Levels) Observe(g *wave.Grid) {
	for _, v := range g.Data {
		if v > l.max {
			l.max = v
		}
	}
}

// Max returns the running maximum.
func (l *Levels) Max() float32 { return l.max }

// Reset forgets the observed maximum.
func (l *Levels) Reset() { l.max = 0 }

// Shade maps v into a grey level using [0, max].
func (l *Levels) Shade(v float32) byte {
	if l.max <= 0 || v <= 0 || v != v {
		return 0
	}
	if v >= l.max {
		return 255
	}
	return byte(v / l.max * 255)
}

// Pixels writes RGBA pixels for g into dst, which must hold 4 bytes per cell.
func (l *Levels) Pixels(dst []byte, g *wave.Grid) {
	for i, v := range g.Data {
		s := l.Shade(v)
		base := i * 4
		dst[base] = s
		dst[base+1] = s
		dst[base+2] = s
		dst[base+3] = 255
	}
}

// Image returns a new RGBA image of g.
func (l *Levels) Image(g *wave.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	l.Pixels(img.Pix, g)
	return img
}
