package anim

import (
	"fmt"
	"io"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
)

// Angles returns the camera sweep for n frames: one full turn with the
// end angle excluded so loops play seamlessly.
func Angles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 360 * float64(i) / float64(n)
	}
	return out
}

// Animate renders one full turn of the dashboard into enc, reporting
// progress after each completed tenth of the run when progress is
// non-nil. Runs of fewer than ten frames report nothing. Returns the
// number of frames written.
func Animate(r Renderer, enc Encoder, c *foam.Case, frames int, progress io.Writer) (int, error) {
	if frames <= 0 {
		return 0, fmt.Errorf("anim: frame count must be positive, got %d", frames)
	}

	step := frames / 10
	for i, angle := range Angles(frames) {
		r.ClearAll()
		ComposeFrame(r, c, angle)
		if err := enc.WriteFrame(r.Render()); err != nil {
			return i, fmt.Errorf("frame %d: %w", i, err)
		}

		if progress != nil && step > 0 && (i+1)%step == 0 {
			fmt.Fprintf(progress, "progress: %d%%\n", (i+1)*100/frames)
		}
	}
	return frames, nil
}
