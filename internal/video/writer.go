// Package video encodes rendered frames into a Motion-JPEG AVI file.
package video

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// Writer streams frames of a fixed size into an AVI container.
type Writer struct {
	avi     mjpeg.AviWriter
	path    string
	w, h    int
	quality int
	frames  int
}

// jpegQuality maps the 0..10 movie quality scale onto JPEG quality.
func jpegQuality(q int) int {
	q *= 10
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	return q
}

// NewWriter creates the AVI file at path for w x h frames. quality is
// the movie quality on a 0..10 scale.
func NewWriter(path string, w, h, fps, quality int) (*Writer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("video: invalid frame size %dx%d", w, h)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("video: invalid frame rate %d", fps)
	}
	avi, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("failed to create movie file: %w", err)
	}
	return &Writer{avi: avi, path: path, w: w, h: h, quality: jpegQuality(quality)}, nil
}

// Path returns the output file path.
func (wr *Writer) Path() string { return wr.path }

// FrameCount returns the number of frames written so far.
func (wr *Writer) FrameCount() int { return wr.frames }

// WriteFrame appends one frame, which must match the writer's size.
func (wr *Writer) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != wr.w || b.Dy() != wr.h {
		return fmt.Errorf("video: frame is %dx%d, movie is %dx%d", b.Dx(), b.Dy(), wr.w, wr.h)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: wr.quality}); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := wr.avi.AddFrame(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	wr.frames++
	return nil
}

// Close finalizes the AVI index and closes the file.
func (wr *Writer) Close() error {
	if err := wr.avi.Close(); err != nil {
		return fmt.Errorf("failed to close movie file: %w", err)
	}
	return nil
}
