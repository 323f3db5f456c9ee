package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/store"
)

var summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// RenderReplay plots the speed trace of a stored episode with a short
// summary.
func RenderReplay(meta *store.EpisodeMetadata, frames []store.Frame) string {
	if len(frames) == 0 {
		return "episode has no frames\n"
	}

	speeds := make([]float64, len(frames))
	for i, f := range frames {
		speeds[i] = math.Hypot(f.VX, f.VY)
	}

	plot := asciigraph.Plot(speeds,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("speed (px/s) over episode ticks"))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("episode %s\n\n", meta.ID))
	sb.WriteString(plot)
	sb.WriteString("\n\n")
	sb.WriteString(summaryStyle.Render(fmt.Sprintf(
		"released at (%.0f, %.0f) px/s · %d ticks over %.2fs · %d bounces · rest at (%.0f, %.0f)",
		meta.ReleaseVX, meta.ReleaseVY, meta.Ticks, meta.Duration, meta.Bounces, meta.RestX, meta.RestY)))
	sb.WriteString("\n")
	return sb.String()
}
