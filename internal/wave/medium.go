package wave

import (
	"fmt"
	"math"
)

const (
	minRefractiveIndex = 1.0
	maxRefractiveIndex = 10.0
)

// buildDamping writes the damping grid from an optional map and carves the
// absorbing border ramp into all four edges.
func buildDamping(dst, m *Grid, globalDampening float32, border int) error {
	if m != nil {
		if !dst.SameShape(m) {
			return fmt.Errorf("damping map %dx%d, grid %dx%d: %w",
				m.Width, m.Height, dst.Width, dst.Height, ErrDimensionMismatch)
		}
		for i, v := range m.Data {
			if v != v {
				v = 0
			}
			dst.Data[i] = clampFloat32(v, 0, globalDampening)
		}
	} else {
		dst.Fill(globalDampening)
	}
	applyBorderRamp(dst, globalDampening, border)
	return nil
}

// borderRampValue is the damping of ring i in a border of the given thickness.
func borderRampValue(i, thickness int) float32 {
	return float32(math.Sqrt(float64(i) / float64(thickness)))
}

// applyBorderRamp overwrites the outer rings with the sqrt(i/T) profile. Each
// ring spans [i, extent-i) along the orthogonal axis.
func applyBorderRamp(d *Grid, globalDampening float32, thickness int) {
	w, h := d.Width, d.Height
	for i := 0; i < thickness; i++ {
		v := borderRampValue(i, thickness)
		if v > globalDampening {
			v = globalDampening
		}
		if i < h {
			top := d.row(i)
			bottom := d.row(h - 1 - i)
			for x := i; x < w-i; x++ {
				top[x] = v
				bottom[x] = v
			}
		}
		if i < w {
			for y := i; y < h-i; y++ {
				d.Data[y*w+i] = v
				d.Data[y*w+w-1-i] = v
			}
		}
	}
}

// buildWaveSpeed sets dst to 1/clip(n, 1, 10).
func buildWaveSpeed(dst, n *Grid) error {
	if !dst.SameShape(n) {
		if n == nil {
			return fmt.Errorf("refractive index map missing: %w", ErrDimensionMismatch)
		}
		return fmt.Errorf("refractive index map %dx%d, grid %dx%d: %w",
			n.Width, n.Height, dst.Width, dst.Height, ErrDimensionMismatch)
	}
	for i, v := range n.Data {
		if v != v {
			v = minRefractiveIndex
		}
		dst.Data[i] = 1 / clampFloat32(v, minRefractiveIndex, maxRefractiveIndex)
	}
	return nil
}
