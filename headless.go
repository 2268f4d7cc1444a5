package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/mrmartin/wavesim/internal/config"
	"github.com/mrmartin/wavesim/internal/record"
	"github.com/mrmartin/wavesim/internal/render"
	"github.com/mrmartin/wavesim/internal/wave"
	"golang.org/x/sync/errgroup"
)

// runHeadless advances the simulator for cfg.Frames ticks without a window.
// Frames are encoded on a separate goroutine when a recording path is set,
// and the field energy history is plotted at the end when a plot path is set.
func runHeadless(ctx context.Context, cfg config.Config, sim *wave.Simulator) error {
	var rec *record.Recorder
	if cfg.RecordPath != "" {
		var err error
		rec, err = record.NewRecorder(cfg.RecordPath, sim.Width(), sim.Height(), cfg.FrameRate, record.DefaultJPEGQuality)
		if err != nil {
			return err
		}
	}

	var (
		levels render.Levels
		energy record.EnergySeries
	)
	frames := make(chan image.Image, recordFrameQueue)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		start := time.Now()
		for i := 0; i < cfg.Frames; i++ {
			for s := 0; s < cfg.StepsPerTick; s++ {
				sim.Step()
			}
			field := sim.ReadField()
			levels.Observe(field)
			energy.Observe(sim.Time(), field)

			if rec != nil {
				select {
				case frames <- levels.Image(field):
				case <-ctx.Done():
					return ctx.Err()
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}

			if (i+1)%headlessLogInterval == 0 {
				elapsed := time.Since(start)
				log.Printf("Frame %d/%d t=%.0f sources=%d max=%.3f (%.2f ms/frame)",
					i+1, cfg.Frames, sim.Time(), sim.SourceCount(), levels.Max(),
					elapsed.Seconds()*1000/float64(i+1))
			}
		}
		return nil
	})

	if rec != nil {
		g.Go(func() error {
			for img := range frames {
				if err := rec.AddFrame(img); err != nil {
					return fmt.Errorf("recording frame %d: %w", rec.Frames(), err)
				}
			}
			return nil
		})
	}

	runErr := g.Wait()
	if rec != nil {
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = err
		}
		log.Printf("Wrote %d frames to %s", rec.Frames(), cfg.RecordPath)
	}
	if runErr != nil {
		return runErr
	}

	if energy.Len() > 0 {
		lo, hi, mean := energy.Summary()
		log.Printf("Field energy over %d frames: min=%.4g max=%.4g mean=%.4g", energy.Len(), lo, hi, mean)
	}
	if cfg.PlotPath != "" {
		if err := writeEnergyPlot(cfg.PlotPath, &energy); err != nil {
			return err
		}
		log.Printf("Wrote energy plot to %s", cfg.PlotPath)
	}
	return nil
}

func writeEnergyPlot(path string, energy *record.EnergySeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	if err := energy.WritePlot(f, plotWidth, plotHeight); err != nil {
		f.Close()
		return fmt.Errorf("rendering plot: %w", err)
	}
	return f.Close()
}
