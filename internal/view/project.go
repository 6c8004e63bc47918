package view

import (
	"fmt"

	"github.com/h0rv/stepdiff/internal/diffmodel"
	"github.com/h0rv/stepdiff/internal/navigator"
)

// Project is the pure ViewProjection: a function from (ChangeModel,
// StepState, AnimationFrame, FoldMode) to a sequence of ViewLine.
func Project(model *diffmodel.ChangeModel, state navigator.StepState, frame AnimationFrame, fold FoldMode) []ViewLine {
	applied := state.AppliedSet()

	var primaryID *uint32
	if state.StepDirection == navigator.DirBackward {
		if last := state.LastApplied(); last != nil {
			primaryID = last
		} else {
			primaryID = state.ActiveChange
		}
	} else {
		primaryID = state.ActiveChange
	}

	var lines []ViewLine
	primaryAssigned := false
	firstActiveInHunkIdx := -1

	for _, c := range model.Changes {
		isApplied := applied[c.ID]
		isActiveChange := state.ActiveChange != nil && *state.ActiveChange == c.ID
		isInAnimatingHunk := false
		var changeHunk uint32
		hasHunk := false
		if h, ok := model.HunkForChange(c.ID); ok {
			changeHunk = h
			hasHunk = true
			if state.AnimatingHunk != nil && *state.AnimatingHunk == h {
				isInAnimatingHunk = true
			}
		}
		isActive := isActiveChange || isInAnimatingHunk

		line, ok := projectChange(c, isApplied, isActive, state.StepDirection, frame)
		if !ok {
			continue
		}

		line.ChangeID = c.ID
		line.HasChangeID = true
		line.IsActiveChange = isActiveChange
		line.IsActive = isActive
		if hasHunk {
			h := changeHunk
			line.HunkIndex = &h
		}
		line.HasChanges = c.IsSignificant()

		showExtent := isInAnimatingHunk
		if !showExtent && hasHunk && state.LastNavWasHunk && changeHunk == state.CurrentHunk {
			showExtent = true
		}
		line.ShowHunkExtent = showExtent

		if !primaryAssigned && primaryID != nil && *primaryID == c.ID {
			line.IsPrimaryActive = true
			line.IsActive = true
			primaryAssigned = true
		}
		if isActive && firstActiveInHunkIdx == -1 && state.AnimatingHunk != nil && hasHunk && changeHunk == *state.AnimatingHunk {
			firstActiveInHunkIdx = len(lines)
		}

		lines = append(lines, line)
	}

	// Primary fallback: if no explicit primary was assigned but we're
	// inside a hunk animation, the first active line in that hunk becomes
	// primary.
	if !primaryAssigned && primaryID == nil && state.AnimatingHunk != nil && firstActiveInHunkIdx >= 0 {
		lines[firstActiveInHunkIdx].IsPrimaryActive = true
		lines[firstActiveInHunkIdx].IsActive = true
	}

	if fold.Enabled && fold.Threshold > 0 {
		lines = applyFold(lines, fold.Threshold)
	}

	return lines
}

// projectChange renders zero or one ViewLine for a single change, given the
// applied/active flags already computed by the caller.
func projectChange(c diffmodel.Change, isApplied, isActive bool, dir navigator.StepDirection, frame AnimationFrame) (ViewLine, bool) {
	if c.IsWordLevel() {
		return projectWordLevel(c, isApplied, isActive, dir, frame)
	}
	return projectSingleSpan(c, isApplied, isActive, dir, frame)
}

func projectSingleSpan(c diffmodel.Change, isApplied, isActive bool, dir navigator.StepDirection, frame AnimationFrame) (ViewLine, bool) {
	span := c.Spans[0]
	switch span.Kind {
	case diffmodel.Equal:
		return ViewLine{
			Content: span.Text,
			Spans:   []ViewSpan{{Text: span.Text, Kind: SpanEqual}},
			Kind:    Context,
			OldLine: span.OldLine,
			NewLine: span.NewLine,
		}, true
	case diffmodel.Delete:
		kind := Deleted
		spanKind := SpanDeleted
		if isActive {
			kind = PendingDelete
			spanKind = SpanPendingDelete
		}
		return ViewLine{
			Content: span.Text,
			Spans:   []ViewSpan{{Text: span.Text, Kind: spanKind}},
			Kind:    kind,
			OldLine: span.OldLine,
		}, true
	case diffmodel.Insert:
		if !isApplied {
			return ViewLine{}, false
		}
		kind := Inserted
		spanKind := SpanInserted
		if isActive {
			kind = PendingInsert
			spanKind = SpanPendingInsert
		}
		return ViewLine{
			Content: span.Text,
			Spans:   []ViewSpan{{Text: span.Text, Kind: spanKind}},
			Kind:    kind,
			NewLine: span.NewLine,
		}, true
	case diffmodel.Replace:
		showNew := computeShowNew(isApplied, dir, frame)
		content := span.Text
		spanKind := SpanDeleted
		if showNew {
			content = span.NewText
			spanKind = SpanInserted
		}
		kind := Modified
		if isActive {
			kind = PendingModify
			if showNew {
				spanKind = SpanPendingInsert
			} else {
				spanKind = SpanPendingDelete
			}
		}
		return ViewLine{
			Content: content,
			Spans:   []ViewSpan{{Text: content, Kind: spanKind}},
			Kind:    kind,
			OldLine: span.OldLine,
			NewLine: span.NewLine,
		}, true
	default:
		panic(fmt.Sprintf("unknown span kind %v", span.Kind))
	}
}

func projectWordLevel(c diffmodel.Change, isApplied, isActive bool, dir navigator.StepDirection, frame AnimationFrame) (ViewLine, bool) {
	insertOnly := c.AllInsertOnly()
	deleteOnly := c.AllDeleteOnly()

	includeInsert, includeDelete := false, false
	switch {
	case insertOnly:
		if isActive && frame != Idle {
			includeInsert = true
		} else {
			includeInsert = isApplied
		}
	case deleteOnly:
		if isActive && frame != Idle {
			includeDelete = true
		} else {
			includeDelete = isApplied
		}
	default: // mixed: both insert and delete spans present
		showNew := computeShowNew(isApplied, dir, frame)
		includeInsert = showNew
		includeDelete = !showNew
	}

	var oldLine, newLine int
	var spans []ViewSpan
	var content string
	for _, s := range c.Spans {
		switch s.Kind {
		case diffmodel.Equal:
			spans = append(spans, ViewSpan{Text: s.Text, Kind: SpanEqual})
			content += s.Text
			if s.OldLine > 0 {
				oldLine = s.OldLine
			}
			if s.NewLine > 0 {
				newLine = s.NewLine
			}
		case diffmodel.Insert:
			if !includeInsert {
				continue
			}
			kind := SpanInserted
			if isActive {
				kind = SpanPendingInsert
			}
			spans = append(spans, ViewSpan{Text: s.Text, Kind: kind})
			content += s.Text
			if s.NewLine > 0 {
				newLine = s.NewLine
			}
		case diffmodel.Delete:
			if !includeDelete {
				continue
			}
			kind := SpanDeleted
			if isActive {
				kind = SpanPendingDelete
			}
			spans = append(spans, ViewSpan{Text: s.Text, Kind: kind})
			content += s.Text
			if s.OldLine > 0 {
				oldLine = s.OldLine
			}
		}
	}

	if len(spans) == 0 {
		return ViewLine{}, false
	}

	var kind LineKind
	switch {
	case isActive:
		kind = PendingModify
	case isApplied:
		kind = Modified
	default:
		kind = Context
	}

	return ViewLine{
		Content: content,
		Spans:   spans,
		Kind:    kind,
		OldLine: oldLine,
		NewLine: newLine,
	}, true
}

// computeShowNew picks old-side vs new-side content for a Modified line
// based on apply state, step direction, and animation frame.
func computeShowNew(isApplied bool, dir navigator.StepDirection, frame AnimationFrame) bool {
	if dir == navigator.DirNone {
		return isApplied
	}
	switch frame {
	case Idle:
		return isApplied
	case FadeOut:
		return dir == navigator.DirBackward
	case FadeIn:
		return dir != navigator.DirBackward
	default:
		return isApplied
	}
}

// applyFold collapses runs of >= threshold consecutive Context lines
// outside any hunk into a single synthetic fold marker ViewLine. Folding
// never crosses a hunk boundary.
func applyFold(lines []ViewLine, threshold int) []ViewLine {
	var out []ViewLine
	i := 0
	for i < len(lines) {
		if lines[i].Kind == Context && lines[i].HunkIndex == nil {
			j := i
			for j < len(lines) && lines[j].Kind == Context && lines[j].HunkIndex == nil {
				j++
			}
			runLen := j - i
			if runLen >= threshold {
				out = append(out, ViewLine{
					Content:    fmt.Sprintf("⋯ %d unchanged lines", runLen),
					Kind:       Context,
					HasChanges: false,
				})
				i = j
				continue
			}
		}
		out = append(out, lines[i])
		i++
	}
	return out
}
