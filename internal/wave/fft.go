package wave

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// fftConvolver performs a linear 2D convolution of a grid with a fixed 3×3
// kernel. Both operands are zero padded to (h+2)×(w+2) so the circular FFT
// product equals the linear one; the "same"-sized result is read back with a
// one-cell offset.
type fftConvolver struct {
	width, height int
	padW, padH    int

	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT

	kernelCoeff []complex128
	work        []complex128
	col         []complex128
}

func newFFTConvolver(width, height int, k *Kernel) *fftConvolver {
	c := &fftConvolver{
		width:  width,
		height: height,
		padW:   width + 2,
		padH:   height + 2,
	}
	c.rowFFT = fourier.NewCmplxFFT(c.padW)
	c.colFFT = fourier.NewCmplxFFT(c.padH)
	c.work = make([]complex128, c.padW*c.padH)
	c.col = make([]complex128, c.padH)

	c.kernelCoeff = make([]complex128, c.padW*c.padH)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			c.kernelCoeff[j*c.padW+i] = complex(float64(k[j][i]), 0)
		}
	}
	c.transform(c.kernelCoeff, false)
	return c
}

// transform runs a separable 2D FFT over data in place: rows first, then
// columns. The inverse is normalized.
func (c *fftConvolver) transform(data []complex128, inverse bool) {
	for y := 0; y < c.padH; y++ {
		seg := data[y*c.padW : (y+1)*c.padW]
		if inverse {
			c.rowFFT.Sequence(seg, seg)
		} else {
			c.rowFFT.Coefficients(seg, seg)
		}
	}
	for x := 0; x < c.padW; x++ {
		for y := 0; y < c.padH; y++ {
			c.col[y] = data[y*c.padW+x]
		}
		if inverse {
			c.colFFT.Sequence(c.col, c.col)
		} else {
			c.colFFT.Coefficients(c.col, c.col)
		}
		for y := 0; y < c.padH; y++ {
			data[y*c.padW+x] = c.col[y]
		}
	}
	if inverse {
		scale := complex(1/float64(c.padW*c.padH), 0)
		for i := range data {
			data[i] *= scale
		}
	}
}

// convolve writes conv(src, kernel) into dst, which must hold width*height values.
func (c *fftConvolver) convolve(dst []float32, src *Grid) {
	for i := range c.work {
		c.work[i] = 0
	}
	for y := 0; y < c.height; y++ {
		row := src.row(y)
		base := y * c.padW
		for x, v := range row {
			c.work[base+x] = complex(float64(v), 0)
		}
	}
	c.transform(c.work, false)
	for i := range c.work {
		c.work[i] *= c.kernelCoeff[i]
	}
	c.transform(c.work, true)
	for y := 0; y < c.height; y++ {
		base := (y + 1) * c.padW
		out := dst[y*c.width : (y+1)*c.width]
		for x := range out {
			out[x] = float32(real(c.work[base+x+1]))
		}
	}
}
