package result

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Plot renders one recorded output as an ASCII line chart.
func Plot(r *Recorder, name string, height, width int) (string, error) {
	series, ok := r.Series(name)
	if !ok {
		return "", fmt.Errorf("no output named %q (available: %v)", name, r.Names())
	}
	if len(series) == 0 {
		return "", fmt.Errorf("output %q has no samples", name)
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(name),
	), nil
}
