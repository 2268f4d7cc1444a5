package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrmartin/wavesim/internal/wave"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// EnergySeries samples the field once per frame.
type EnergySeries struct {
	Times  []float64
	Energy []float64 // sum of squared amplitudes
	Peak   []float64 // largest absolute amplitude

	scratch []float64
}

// Observe appends one sample of g taken at simulated time t.
func (s *EnergySeries) Observe(t float64, g *wave.Grid) {
	if cap(s.scratch) < len(g.Data) {
		s.scratch = make([]float64, len(g.Data))
	}
	s.scratch = s.scratch[:len(g.Data)]
	for i, v := range g.Data {
		s.scratch[i] = float64(v)
	}
	var energy, peak float64
	if len(s.scratch) > 0 {
		energy = floats.Dot(s.scratch, s.scratch)
		peak = floats.Max(s.scratch)
		if lo := -floats.Min(s.scratch); lo > peak {
			peak = lo
		}
	}
	s.Times = append(s.Times, t)
	s.Energy = append(s.Energy, energy)
	s.Peak = append(s.Peak, peak)
}

// Len returns the number of samples.
func (s *EnergySeries) Len() int { return len(s.Times) }

// Summary reports the minimum, maximum and mean energy.
func (s *EnergySeries) Summary() (lo, hi, mean float64) {
	if len(s.Energy) == 0 {
		return 0, 0, 0
	}
	return floats.Min(s.Energy), floats.Max(s.Energy), floats.Sum(s.Energy) / float64(len(s.Energy))
}

// WritePlot renders energy (primary axis) and peak amplitude (secondary axis)
// against simulated time as a PNG.
func (s *EnergySeries) WritePlot(w io.Writer, width, height int) error {
	if s.Len() < 2 {
		return errors.New("energy plot needs at least two samples")
	}
	first, last := s.Times[0], s.Times[len(s.Times)-1]
	ticks := make([]chart.Tick, 0, 6)
	for _, v := range floats.Span(make([]float64, 6), first, last) {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "t",
			Style: chart.Style{FontSize: 10.0},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "energy",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "peak",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "energy",
				XValues: s.Times,
				YValues: s.Energy,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "peak",
				YAxis:   chart.YAxisSecondary,
				XValues: s.Times,
				YValues: s.Peak,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering energy plot: %w", err)
	}
	return nil
}
