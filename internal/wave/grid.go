package wave

// Grid is a dense row-major lattice of float32 cells. Cell (x, y) lives at
// Data[y*Width+x].
type Grid struct {
	Width  int
	Height int
	Data   []float32
}

// NewGrid allocates a zeroed width×height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Data: make([]float32, width*height)}
}

// NewGridFilled allocates a grid with every cell set to v.
func NewGridFilled(width, height int, v float32) *Grid {
	g := NewGrid(width, height)
	g.Fill(v)
	return g
}

// At returns the value at column x, row y.
func (g *Grid) At(x, y int) float32 {
	return g.Data[y*g.Width+x]
}

// Set writes the value at column x, row y.
func (g *Grid) Set(x, y int, v float32) {
	g.Data[y*g.Width+x] = v
}

// Contains reports whether (x, y) addresses a cell of the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float32) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// SameShape reports whether o has the same dimensions and backing length.
func (g *Grid) SameShape(o *Grid) bool {
	if o == nil {
		return false
	}
	return g.Width == o.Width && g.Height == o.Height && len(o.Data) == len(g.Data)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Data: make([]float32, len(g.Data))}
	copy(c.Data, g.Data)
	return c
}

// CopyFrom overwrites g with the contents of src. Shapes must match.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.Data, src.Data)
}

// row returns the slice backing row y.
func (g *Grid) row(y int) []float32 {
	base := y * g.Width
	return g.Data[base : base+g.Width]
}

func clampFloat32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
