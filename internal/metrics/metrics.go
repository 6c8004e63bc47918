// Package metrics implements DisplayMetrics: per-ViewMode mapping from a
// ViewLine sequence to display indices, used for scroll centering, hunk
// bounds, and search anchoring.
package metrics

import (
	"github.com/h0rv/stepdiff/internal/navigator"
	"github.com/h0rv/stepdiff/internal/view"
)

// ViewMode selects which rendering metric rules apply.
type ViewMode int

const (
	Unified ViewMode = iota
	Split
	Evolution
	Blame
)

// Bounds is a display-index range, inclusive of Start and exclusive of End.
type Bounds struct {
	Start int
	End   int
}

// Metrics is the computed result for one ViewMode over one ViewLine
// sequence.
type Metrics struct {
	DisplayLen      int
	ActiveIndex     int  // -1 if none
	ActiveIndexOld  int  // Split mode only; -1 if none
	ActiveIndexNew  int  // Split mode only; -1 if none
	HunkBounds      map[uint32]Bounds
}

// Compute maps a projected ViewLine sequence to the display indices and
// hunk bounds its ViewMode needs for scroll centering and search anchoring.
// frame is the caller's current AnimationFrame, needed by Evolution to
// decide whether an active PendingDelete line is mid-fade or at rest.
func Compute(lines []view.ViewLine, mode ViewMode, scroll int, dir navigator.StepDirection, frame view.AnimationFrame) Metrics {
	switch mode {
	case Evolution:
		return computeEvolution(lines, frame)
	case Split:
		return computeSplit(lines, scroll, dir)
	default: // Unified, Blame
		return computeUnified(lines)
	}
}

func computeUnified(lines []view.ViewLine) Metrics {
	m := Metrics{DisplayLen: len(lines), ActiveIndex: -1, HunkBounds: map[uint32]Bounds{}}
	firstActive := -1
	for i, l := range lines {
		if l.IsPrimaryActive {
			m.ActiveIndex = i
		}
		if l.IsActive && firstActive == -1 {
			firstActive = i
		}
	}
	if m.ActiveIndex == -1 {
		m.ActiveIndex = firstActive
	}
	m.HunkBounds = hunkBounds(lines, func(view.ViewLine) bool { return true })
	return m
}

// computeEvolution skips Deleted lines entirely; a PendingDelete line is
// only visible when it is both active and mid-animation (frame != Idle).
// While animating, the active index centers on that fading line rather than
// on whatever line ViewProjection marked IsPrimaryActive, since the fading
// line is what the viewport needs to hold steady on; at rest it falls back
// to the primary-active line, then to the first active line, mirroring
// computeUnified's fallback rule.
func computeEvolution(lines []view.ViewLine, frame view.AnimationFrame) Metrics {
	m := Metrics{ActiveIndex: -1, HunkBounds: map[uint32]Bounds{}}
	include := func(l view.ViewLine) bool {
		if l.Kind == view.Deleted {
			return false
		}
		if l.Kind == view.PendingDelete {
			return l.IsActive && frame != view.Idle
		}
		return true
	}

	idx := 0
	primaryIdx, firstActiveIdx := -1, -1
	for _, l := range lines {
		if !include(l) {
			continue
		}
		if l.IsPrimaryActive {
			primaryIdx = idx
		}
		if l.IsActive && firstActiveIdx == -1 {
			firstActiveIdx = idx
		}
		idx++
	}
	m.DisplayLen = idx

	switch {
	case frame != view.Idle && firstActiveIdx != -1:
		m.ActiveIndex = firstActiveIdx
	case primaryIdx != -1:
		m.ActiveIndex = primaryIdx
	default:
		m.ActiveIndex = firstActiveIdx
	}

	m.HunkBounds = hunkBounds(lines, include)
	return m
}

func computeSplit(lines []view.ViewLine, scroll int, dir navigator.StepDirection) Metrics {
	m := Metrics{ActiveIndex: -1, ActiveIndexOld: -1, ActiveIndexNew: -1, HunkBounds: map[uint32]Bounds{}}
	oldIdx, newIdx := 0, 0
	oldPrimary, newPrimary := -1, -1
	for _, l := range lines {
		inOld := l.OldLine > 0
		inNew := l.NewLine > 0 && l.Kind != view.Deleted && l.Kind != view.PendingDelete
		if l.IsPrimaryActive {
			if inOld {
				oldPrimary = oldIdx
			}
			if inNew {
				newPrimary = newIdx
			}
		}
		if inOld {
			oldIdx++
		}
		if inNew {
			newIdx++
		}
	}
	m.ActiveIndexOld = oldPrimary
	m.ActiveIndexNew = newPrimary
	m.DisplayLen = oldIdx
	if newIdx > m.DisplayLen {
		m.DisplayLen = newIdx
	}

	switch {
	case oldPrimary == -1 && newPrimary == -1:
		m.ActiveIndex = -1
	case oldPrimary == -1:
		m.ActiveIndex = newPrimary
	case newPrimary == -1:
		m.ActiveIndex = oldPrimary
	default:
		oldDist := abs(oldPrimary - scroll)
		newDist := abs(newPrimary - scroll)
		// Open question (b): tie-break prefers new on Forward/None, old on
		// Backward.
		if oldDist == newDist {
			if dir == navigator.DirBackward {
				m.ActiveIndex = oldPrimary
			} else {
				m.ActiveIndex = newPrimary
			}
		} else if oldDist < newDist {
			m.ActiveIndex = oldPrimary
		} else {
			m.ActiveIndex = newPrimary
		}
	}

	m.HunkBounds = hunkBounds(lines, func(view.ViewLine) bool { return true })
	return m
}

func hunkBounds(lines []view.ViewLine, include func(view.ViewLine) bool) map[uint32]Bounds {
	bounds := map[uint32]Bounds{}
	idx := 0
	for _, l := range lines {
		if !include(l) {
			continue
		}
		if l.HunkIndex != nil {
			h := *l.HunkIndex
			b, ok := bounds[h]
			if !ok {
				bounds[h] = Bounds{Start: idx, End: idx + 1}
			} else {
				b.End = idx + 1
				bounds[h] = b
			}
		}
		idx++
	}
	return bounds
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
