// Package patch reconstructs copyable/applicable text (added lines, removed
// lines, resulting code, and a unified-diff hunk body) from one hunk of a
// diffmodel.ChangeModel.
package patch

import (
	"fmt"
	"strings"

	"github.com/h0rv/stepdiff/internal/diffmodel"
)

// AddedLines joins every inserted span's text (including the new side of a
// Replace) within hunkID, in change order.
func AddedLines(model *diffmodel.ChangeModel, hunkID uint32) string {
	var lines []string
	forEachSpan(model, hunkID, func(s diffmodel.ChangeSpan) {
		switch s.Kind {
		case diffmodel.Insert:
			lines = append(lines, s.Text)
		case diffmodel.Replace:
			lines = append(lines, s.NewText)
		}
	})
	return strings.Join(lines, "\n")
}

// RemovedLines joins every deleted span's text (including the old side of a
// Replace) within hunkID, in change order.
func RemovedLines(model *diffmodel.ChangeModel, hunkID uint32) string {
	var lines []string
	forEachSpan(model, hunkID, func(s diffmodel.ChangeSpan) {
		switch s.Kind {
		case diffmodel.Delete:
			lines = append(lines, s.Text)
		case diffmodel.Replace:
			lines = append(lines, s.Text)
		}
	})
	return strings.Join(lines, "\n")
}

// ResultLines joins the lines the hunk produces once fully applied: context
// lines plus the new side of every insertion/replacement.
func ResultLines(model *diffmodel.ChangeModel, hunkID uint32) string {
	var lines []string
	forEachSpan(model, hunkID, func(s diffmodel.ChangeSpan) {
		switch s.Kind {
		case diffmodel.Equal:
			lines = append(lines, s.Text)
		case diffmodel.Insert:
			lines = append(lines, s.Text)
		case diffmodel.Replace:
			lines = append(lines, s.NewText)
		}
	})
	return strings.Join(lines, "\n")
}

// UnifiedHunk reconstructs a best-effort "@@ -old,n +new,m @@" unified diff
// body for hunkID: every span becomes a context/added/removed line in
// change order. Line counts are derived from the spans actually present in
// the model rather than the original file, so this is suitable for display
// and for `git apply` against the same working tree the model was built
// from, not as a byte-exact reproduction of the original patch.
func UnifiedHunk(model *diffmodel.ChangeModel, hunkID uint32) string {
	h := model.HunkByID(hunkID)
	if h == nil {
		return ""
	}

	var body strings.Builder
	oldStart, newStart := 0, 0
	oldCount, newCount := 0, 0

	for _, cid := range h.ChangeIDs {
		c := model.ChangeByID(cid)
		if c == nil {
			continue
		}
		for _, s := range c.Spans {
			switch s.Kind {
			case diffmodel.Equal:
				if oldStart == 0 && s.OldLine > 0 {
					oldStart = s.OldLine
				}
				if newStart == 0 && s.NewLine > 0 {
					newStart = s.NewLine
				}
				oldCount++
				newCount++
				body.WriteString(" " + s.Text + "\n")
			case diffmodel.Delete:
				if oldStart == 0 && s.OldLine > 0 {
					oldStart = s.OldLine
				}
				oldCount++
				body.WriteString("-" + s.Text + "\n")
			case diffmodel.Insert:
				if newStart == 0 && s.NewLine > 0 {
					newStart = s.NewLine
				}
				newCount++
				body.WriteString("+" + s.Text + "\n")
			case diffmodel.Replace:
				if oldStart == 0 && s.OldLine > 0 {
					oldStart = s.OldLine
				}
				if newStart == 0 && s.NewLine > 0 {
					newStart = s.NewLine
				}
				oldCount++
				newCount++
				body.WriteString("-" + s.Text + "\n")
				body.WriteString("+" + s.NewText + "\n")
			}
		}
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
	return header + "\n" + body.String()
}

// FullPatch wraps UnifiedHunk with the file-header lines `git apply` needs.
func FullPatch(model *diffmodel.ChangeModel, hunkID uint32, path string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	sb.WriteString(UnifiedHunk(model, hunkID))
	return sb.String()
}

func forEachSpan(model *diffmodel.ChangeModel, hunkID uint32, fn func(diffmodel.ChangeSpan)) {
	h := model.HunkByID(hunkID)
	if h == nil {
		return
	}
	for _, cid := range h.ChangeIDs {
		c := model.ChangeByID(cid)
		if c == nil {
			continue
		}
		for _, s := range c.Spans {
			fn(s)
		}
	}
}
