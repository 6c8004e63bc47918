package render

import (
	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/view"
)

// filterEvolution applies the Evolution view's line-admission rule (spec
// §4.5): Deleted lines never appear; a PendingDelete line only appears while
// its change is active. Together with drawEvolution's Idle check (an active
// PendingDelete is also dropped at rest) this mirrors
// metrics.computeEvolution's `include` predicate so DisplayMetrics and the
// rendered rows agree on indices.
func filterEvolution(lines []view.ViewLine) []view.ViewLine {
	out := make([]view.ViewLine, 0, len(lines))
	for _, l := range lines {
		if l.Kind == view.Deleted {
			continue
		}
		if l.Kind == view.PendingDelete && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out
}

// drawEvolution renders the single animated pane used by the Evolution
// mode: the same content pipeline as drawUnified, over the filtered line
// set.
func drawEvolution(a *AppState, x, y, width, height int, lines []view.ViewLine, m metrics.Metrics, filename string) {
	visible := filterEvolution(lines)
	if a.Frame == view.Idle {
		atRest := visible[:0]
		for _, l := range visible {
			if l.Kind != view.PendingDelete {
				atRest = append(atRest, l)
			}
		}
		visible = atRest
	}
	drawUnified(a, x, y, width, height, visible, m, filename)
}
