// Package record writes simulation output to disk: MJPEG video of the field
// and a plot of field energy over time.
package record

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// DefaultJPEGQuality is used when NewRecorder is given a quality of zero.
const DefaultJPEGQuality = 90

// Recorder appends frames to an MJPEG AVI file.
type Recorder struct {
	w      mjpeg.AviWriter
	opts   jpeg.Options
	buf    bytes.Buffer
	frames int
	width  int
	height int
}

// NewRecorder creates path and prepares it for width×height frames at fps.
func NewRecorder(path string, width, height, fps, quality int) (*Recorder, error) {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	w, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return &Recorder{
		w:      w,
		opts:   jpeg.Options{Quality: quality},
		width:  width,
		height: height,
	}, nil
}

// AddFrame encodes img as JPEG and appends it.
func (r *Recorder) AddFrame(img image.Image) error {
	if b := img.Bounds(); b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("frame %dx%d, recorder %dx%d", b.Dx(), b.Dy(), r.width, r.height)
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &r.opts); err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.frames, err)
	}
	if err := r.w.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the AVI index.
func (r *Recorder) Close() error {
	return r.w.Close()
}
