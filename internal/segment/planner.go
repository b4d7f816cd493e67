package segment

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks precondition violations that fail the whole run
// before any window is processed.
var ErrInvalidInput = errors.New("invalid input")

// Window is one half-open time slice [Start, End) of the source audio.
// Windows are generated once by Plan and never mutated.
type Window struct {
	Index int
	Start float64
	End   float64
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

func (w Window) String() string {
	return fmt.Sprintf("window %d [%.3f, %.3f)", w.Index, w.Start, w.End)
}

// Plan computes an ordered sequence of non-overlapping windows covering
// [0, totalDuration). Every window is at most maxDuration long; the final
// window may be shorter but is never empty. Consecutive windows share their
// boundary exactly: windows[i].End == windows[i+1].Start.
func Plan(totalDuration, maxDuration float64) ([]Window, error) {
	if totalDuration <= 0 {
		return nil, fmt.Errorf("%w: total duration %.3f must be positive", ErrInvalidInput, totalDuration)
	}
	if maxDuration <= 0 {
		return nil, fmt.Errorf("%w: max segment duration %.3f must be positive", ErrInvalidInput, maxDuration)
	}

	var windows []Window
	start := 0.0
	for start < totalDuration {
		end := start + maxDuration
		if end > totalDuration {
			end = totalDuration
		}
		windows = append(windows, Window{
			Index: len(windows),
			Start: start,
			End:   end,
		})
		start = end
	}

	return windows, nil
}
