package wave

import (
	"fmt"
	"math"
)

// sourceFields is the number of values describing one source.
const sourceFields = 5

// Source is an oscillating point emitter. X and Y are grid coordinates and
// are truncated to cell indices when the source is injected.
type Source struct {
	X         float64
	Y         float64
	Phase     float64
	Amplitude float64
	Frequency float64 // angular frequency, radians per unit time
}

// Drive returns the source signal at time t.
func (s Source) Drive(t float64) float64 {
	return s.Amplitude * math.Sin(s.Phase+s.Frequency*t)
}

// Cell returns the grid cell the source writes to.
func (s Source) Cell() (int, int) {
	return int(s.X), int(s.Y)
}

// Row returns the source as an (x, y, phase, amplitude, frequency) tuple.
func (s Source) Row() []float64 {
	return []float64{s.X, s.Y, s.Phase, s.Amplitude, s.Frequency}
}

// SourceFromRow converts a 5-value tuple into a Source.
func SourceFromRow(row []float64) (Source, error) {
	if len(row) != sourceFields {
		return Source{}, fmt.Errorf("source has %d fields, want %d: %w", len(row), sourceFields, ErrInvalidShape)
	}
	return Source{X: row[0], Y: row[1], Phase: row[2], Amplitude: row[3], Frequency: row[4]}, nil
}

// sourcesFromRows validates every row before converting any of them.
func sourcesFromRows(rows [][]float64) ([]Source, error) {
	out := make([]Source, 0, len(rows))
	for i, row := range rows {
		src, err := SourceFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		out = append(out, src)
	}
	return out, nil
}

// injectSources blends each source's drive into its cell in population order.
// Later sources overwrite earlier ones that share a cell.
func injectSources(g *Grid, sources []Source, opacity float32, t float64) {
	keep := 1 - opacity
	for _, src := range sources {
		x, y := src.Cell()
		if !g.Contains(x, y) {
			continue
		}
		drive := float32(src.Drive(t))
		idx := y*g.Width + x
		g.Data[idx] = g.Data[idx]*opacity + drive*keep
	}
}

// ChurnDisk describes where churned-in sources are placed and how they
// oscillate.
type ChurnDisk struct {
	CenterX   float64
	CenterY   float64
	Radius    float64
	Amplitude float64
	Frequency float64
}

// churnSources appends one source sampled from disk and then removes a
// uniformly chosen member of the enlarged population. The new source may be
// the one removed, so an empty population stays empty. Draw order: radius,
// angle, phase, removal index.
func churnSources(sources []Source, disk ChurnDisk, rng Rand) []Source {
	x, y := samplePointInDisk(rng, disk.CenterX, disk.CenterY, disk.Radius)
	phase := rng.Float64() * 2 * math.Pi
	sources = append(sources, Source{
		X:         x,
		Y:         y,
		Phase:     phase,
		Amplitude: disk.Amplitude,
		Frequency: disk.Frequency,
	})
	idx := rng.Intn(len(sources))
	return append(sources[:idx], sources[idx+1:]...)
}
