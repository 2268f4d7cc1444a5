package wave

// Kernel is a 3×3 finite-difference stencil indexed [row][column] with the
// center at [1][1].
type Kernel [3][3]float32

// DefaultKernel is the isotropic 9-point Laplacian: center -1, edges 0.2,
// corners 0.05. Its weights sum to zero.
var DefaultKernel = Kernel{
	{0.05, 0.2, 0.05},
	{0.2, -1.0, 0.2},
	{0.05, 0.2, 0.05},
}

// Sum returns the total weight of the kernel.
func (k Kernel) Sum() float32 {
	var s float32
	for _, row := range k {
		for _, v := range row {
			s += v
		}
	}
	return s
}

// laplacianAt convolves the kernel with src around (x, y). Cells outside the
// grid read as zero.
func laplacianAt(src *Grid, k *Kernel, x, y int) float32 {
	w, h := src.Width, src.Height
	var sum float32
	for dy := -1; dy <= 1; dy++ {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		base := sy * w
		for dx := -1; dx <= 1; dx++ {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			sum += k[1+dy][1+dx] * src.Data[base+sx]
		}
	}
	return sum
}

// leapfrog is the damped update for one cell:
// u + (u - uPrev)*d + lap*(c*dt)^2.
func leapfrog(u, uPrev, d, c, lap, dt float32) float32 {
	cdt := c * dt
	return u + (u-uPrev)*d + lap*(cdt*cdt)
}

// stepRows advances rows [y0, y1) of f into f.next. Interior cells use the
// unrolled stencil; the outermost ring falls back to the bounds-checked path.
func stepRows(f *Field, k *Kernel, dt float32, y0, y1 int) {
	w, h := f.width, f.height
	src := f.curr
	for y := y0; y < y1; y++ {
		center := f.curr.row(y)
		prev := f.prev.row(y)
		speed := f.speed.row(y)
		damp := f.damping.row(y)
		out := f.next.row(y)

		if y == 0 || y == h-1 || w < 3 {
			for x := 0; x < w; x++ {
				lap := laplacianAt(src, k, x, y)
				out[x] = leapfrog(center[x], prev[x], damp[x], speed[x], lap, dt)
			}
			continue
		}

		// The kernel is applied as a convolution, so the row above the
		// center pairs with the bottom kernel row.
		top := f.curr.row(y - 1)
		bottom := f.curr.row(y + 1)
		k00, k01, k02 := k[0][0], k[0][1], k[0][2]
		k10, k11, k12 := k[1][0], k[1][1], k[1][2]
		k20, k21, k22 := k[2][0], k[2][1], k[2][2]

		out[0] = leapfrog(center[0], prev[0], damp[0], speed[0], laplacianAt(src, k, 0, y), dt)
		for x := 1; x < w-1; x++ {
			lap := k22*top[x-1] + k21*top[x] + k20*top[x+1] +
				k12*center[x-1] + k11*center[x] + k10*center[x+1] +
				k02*bottom[x-1] + k01*bottom[x] + k00*bottom[x+1]
			out[x] = leapfrog(center[x], prev[x], damp[x], speed[x], lap, dt)
		}
		last := w - 1
		out[last] = leapfrog(center[last], prev[last], damp[last], speed[last], laplacianAt(src, k, last, y), dt)
	}
}
