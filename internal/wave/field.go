package wave

// Field stores the buffers advanced by the integrator. curr, prev and next
// rotate every step; speed and damping only change on reconfiguration.
type Field struct {
	width, height int

	curr *Grid
	prev *Grid
	next *Grid

	speed   *Grid
	damping *Grid

	t float64

	// mediumGen increments whenever speed or damping is rewritten so device
	// copies know to re-upload.
	mediumGen uint64
}

// newField allocates a field at rest in a uniform medium.
func newField(width, height int) *Field {
	return &Field{
		width:   width,
		height:  height,
		curr:    NewGrid(width, height),
		prev:    NewGrid(width, height),
		next:    NewGrid(width, height),
		speed:   NewGridFilled(width, height, 1),
		damping: NewGridFilled(width, height, 1),
	}
}

// swap rotates the triple buffers so that next becomes current and current
// becomes previous.
func (f *Field) swap() {
	f.prev, f.curr, f.next = f.curr, f.next, f.prev
}

func (f *Field) mediumChanged() {
	f.mediumGen++
}
