package diffmodel

import "strings"

// Build runs the bundled line/word diff engine over old and new file text
// and assembles a ChangeModel. The diff algorithm itself is treated as an
// external collaborator sitting outside the invariants this package
// guarantees (see DESIGN.md for why it's hand-rolled rather than imported).
func Build(oldText, newText string) *ChangeModel {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	ops := lineDiff(oldLines, newLines)

	var changes []Change
	var nextID uint32

	push := func(spans ...ChangeSpan) {
		changes = append(changes, Change{ID: nextID, Spans: spans})
		nextID++
	}

	i := 0
	for i < len(ops) {
		op := ops[i]
		switch op.kind {
		case opEqual:
			push(ChangeSpan{Kind: Equal, Text: op.text, OldLine: op.oldLine, NewLine: op.newLine})
			i++
		case opDelete:
			// look ahead for a matching run of inserts immediately after a
			// run of deletes of the same length: treat each (delete,insert)
			// pair as one modified-line change.
			delStart := i
			for i < len(ops) && ops[i].kind == opDelete {
				i++
			}
			delRun := ops[delStart:i]
			insStart := i
			for i < len(ops) && ops[i].kind == opInsert {
				i++
			}
			insRun := ops[insStart:i]

			n := len(delRun)
			if len(insRun) < n {
				n = len(insRun)
			}
			for k := 0; k < n; k++ {
				pushModifiedLine(push, delRun[k], insRun[k])
			}
			for _, d := range delRun[n:] {
				push(ChangeSpan{Kind: Delete, Text: d.text, OldLine: d.oldLine})
			}
			for _, ins := range insRun[n:] {
				push(ChangeSpan{Kind: Insert, Text: ins.text, NewLine: ins.newLine})
			}
		case opInsert:
			push(ChangeSpan{Kind: Insert, Text: op.text, NewLine: op.newLine})
			i++
		}
	}

	model := &ChangeModel{Changes: changes}
	for i := range model.Changes {
		c := &model.Changes[i]
		if c.IsSignificant() {
			model.SignificantChanges = append(model.SignificantChanges, c.ID)
		}
		for _, s := range c.Spans {
			switch s.Kind {
			case Insert:
				model.Insertions++
			case Delete:
				model.Deletions++
			case Replace:
				model.Insertions++
				model.Deletions++
			}
		}
	}
	model.Hunks = groupHunks(model.Changes, model.SignificantChanges)
	model.index()
	return model
}

// pushModifiedLine turns a deleted line and an inserted line at the same
// logical position into either a word-level change (multiple spans) or,
// when the word diff yields only a single span, a single-span Replace change.
func pushModifiedLine(push func(...ChangeSpan), del, ins lineOp) {
	spans := wordDiff(del.text, ins.text, del.oldLine, ins.newLine)
	if len(spans) > 1 {
		push(spans...)
		return
	}
	push(ChangeSpan{Kind: Replace, Text: del.text, NewText: ins.text, OldLine: del.oldLine, NewLine: ins.newLine})
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type lineOp struct {
	kind    opKind
	text    string
	oldLine int
	newLine int
}

// lineDiff computes a minimal-edit-script alignment between old and new
// line slices using a classic LCS dynamic-programming table, then walks the
// table back to front to emit Equal/Delete/Insert ops in source order.
func lineDiff(oldLines, newLines []string) []lineOp {
	n, m := len(oldLines), len(newLines)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []lineOp
	i, j := 0, 0
	oldLineNo, newLineNo := 1, 1
	for i < n && j < m {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, lineOp{kind: opEqual, text: oldLines[i], oldLine: oldLineNo, newLine: newLineNo})
			i++
			j++
			oldLineNo++
			newLineNo++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, lineOp{kind: opDelete, text: oldLines[i], oldLine: oldLineNo})
			i++
			oldLineNo++
		default:
			ops = append(ops, lineOp{kind: opInsert, text: newLines[j], newLine: newLineNo})
			j++
			newLineNo++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, lineOp{kind: opDelete, text: oldLines[i], oldLine: oldLineNo})
		oldLineNo++
	}
	for ; j < m; j++ {
		ops = append(ops, lineOp{kind: opInsert, text: newLines[j], newLine: newLineNo})
		newLineNo++
	}
	return ops
}

// wordDiff tokenizes two lines on whitespace boundaries (keeping the
// whitespace as part of the following token so reassembly is exact) and
// runs the same LCS alignment at token granularity, merging consecutive
// runs of the same kind into single spans.
func wordDiff(oldText, newText string, oldLine, newLine int) []ChangeSpan {
	oldTok := tokenize(oldText)
	newTok := tokenize(newText)
	ops := lineDiff(oldTok, newTok) // reuse: works on any []string

	var spans []ChangeSpan
	flush := func(kind SpanKind, buf *strings.Builder) {
		if buf.Len() == 0 {
			return
		}
		span := ChangeSpan{Kind: kind, Text: buf.String()}
		if kind == Equal || kind == Delete {
			span.OldLine = oldLine
		}
		if kind == Equal || kind == Insert {
			span.NewLine = newLine
		}
		spans = append(spans, span)
		buf.Reset()
	}

	var buf strings.Builder
	var cur SpanKind = Equal
	first := true
	for _, op := range ops {
		var kind SpanKind
		switch op.kind {
		case opEqual:
			kind = Equal
		case opDelete:
			kind = Delete
		case opInsert:
			kind = Insert
		}
		if first {
			cur = kind
			first = false
		} else if kind != cur {
			flush(cur, &buf)
			cur = kind
		}
		buf.WriteString(op.text)
	}
	if !first {
		flush(cur, &buf)
	}
	return spans
}

// tokenize splits text into words, attaching leading whitespace to the
// following word so concatenating all tokens reconstructs the input
// exactly.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	var cur strings.Builder
	inSpace := false
	started := false
	for _, r := range s {
		isSpace := r == ' ' || r == '\t'
		if started && isSpace != inSpace {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		inSpace = isSpace
		started = true
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// groupHunks assigns each significant change to a hunk, starting a new hunk
// whenever two consecutive significant changes are farther apart than
// HunkProximityLines in change-index terms (a proxy for source-line
// distance, since non-word-level changes are one line each).
func groupHunks(changes []Change, significant []uint32) []Hunk {
	if len(significant) == 0 {
		return nil
	}
	posOf := make(map[uint32]int, len(changes))
	for i, c := range changes {
		posOf[c.ID] = i
	}

	var hunks []Hunk
	var nextHunkID uint32
	current := Hunk{ID: nextHunkID, ChangeIDs: []uint32{significant[0]}}
	lastPos := posOf[significant[0]]
	for _, id := range significant[1:] {
		pos := posOf[id]
		if pos-lastPos > HunkProximityLines {
			hunks = append(hunks, current)
			nextHunkID++
			current = Hunk{ID: nextHunkID, ChangeIDs: []uint32{id}}
		} else {
			current.ChangeIDs = append(current.ChangeIDs, id)
		}
		lastPos = pos
	}
	hunks = append(hunks, current)
	return hunks
}
