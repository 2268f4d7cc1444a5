package record

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrmartin/wavesim/internal/wave"
)

func TestEnergySeriesObserve(t *testing.T) {
	var s EnergySeries
	s.Observe(0, &wave.Grid{Width: 3, Height: 1, Data: []float32{1, -2, 0}})
	s.Observe(1, &wave.Grid{Width: 3, Height: 1, Data: []float32{0.5, 0, 0}})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Energy[0] != 5 || s.Peak[0] != 2 {
		t.Fatalf("sample 0 = energy %v peak %v, want 5 and 2", s.Energy[0], s.Peak[0])
	}
	if s.Energy[1] != 0.25 || s.Peak[1] != 0.5 {
		t.Fatalf("sample 1 = energy %v peak %v, want 0.25 and 0.5", s.Energy[1], s.Peak[1])
	}
	lo, hi, mean := s.Summary()
	if lo != 0.25 || hi != 5 || math.Abs(mean-2.625) > 1e-12 {
		t.Fatalf("Summary = %v %v %v", lo, hi, mean)
	}
}

func TestEnergySeriesPlot(t *testing.T) {
	var s EnergySeries
	for i := 0; i < 10; i++ {
		v := float32(i + 1)
		s.Observe(float64(i), &wave.Grid{Width: 2, Height: 1, Data: []float32{v, -v / 2}})
	}
	var buf bytes.Buffer
	if err := s.WritePlot(&buf, 320, 200); err != nil {
		t.Fatalf("WritePlot: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding plot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("plot bounds = %v, want 320x200", b)
	}
}

func TestEnergySeriesPlotNeedsSamples(t *testing.T) {
	var s EnergySeries
	s.Observe(0, wave.NewGrid(2, 2))
	if err := s.WritePlot(&bytes.Buffer{}, 100, 100); err == nil {
		t.Fatal("WritePlot with one sample succeeded, want error")
	}
}

func TestRecorderWritesFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.avi")
	r, err := NewRecorder(path, 8, 6, 20, 0)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := r.AddFrame(image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if err := r.AddFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Fatal("AddFrame with wrong size succeeded, want error")
	}
	if r.Frames() != 3 {
		t.Fatalf("Frames = %d, want 3", r.Frames())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("recording is empty")
	}
}
