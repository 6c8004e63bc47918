package navigator

import (
	"testing"

	"github.com/h0rv/stepdiff/internal/diffmodel"
)

func twoHunkModel() *diffmodel.ChangeModel {
	old := "line1\nline2\nline3\nline4\nline5\nline6\nline7\nline8"
	new := "line1\nLINE2\nline3\nline4\nline5\nline6\nLINE7\nline8"
	return diffmodel.Build(old, new)
}

func TestInvariantAppliedLenEqualsCurrentStep(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	for n.Next() {
		s := n.State()
		if uint32(len(s.AppliedChanges)) != s.CurrentStep {
			t.Fatalf("applied=%d step=%d", len(s.AppliedChanges), s.CurrentStep)
		}
	}
}

func TestInvariantAppliedDistinctAndSignificant(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	sig := map[uint32]bool{}
	for _, id := range m.SignificantChanges {
		sig[id] = true
	}
	for n.Next() {
		seen := map[uint32]bool{}
		for _, id := range n.State().AppliedChanges {
			if seen[id] {
				t.Fatalf("duplicate applied id %d", id)
			}
			seen[id] = true
			if !sig[id] {
				t.Fatalf("applied id %d not significant", id)
			}
		}
	}
}

func TestInvariantStepBounds(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	s := n.State()
	if !s.IsAtStart() {
		t.Fatalf("expected at start")
	}
	for n.Next() {
	}
	s = n.State()
	if !s.IsAtEnd() {
		t.Fatalf("expected at end")
	}
	if s.CurrentStep > s.TotalSteps-1 {
		t.Fatalf("step out of bounds")
	}
}

func TestClearActiveChangeForwardYieldsNone(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	n.Next()
	n.ClearActiveChange()
	s := n.State()
	if s.ActiveChange != nil {
		t.Fatalf("expected nil active change after forward clear")
	}
	if s.AnimatingHunk != nil || s.StepDirection != DirNone {
		t.Fatalf("expected cleared animating hunk and direction none")
	}
}

func TestClearActiveChangeBackwardYieldsLastApplied(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	n.Next()
	n.Next()
	n.Prev()
	n.ClearActiveChange()
	s := n.State()
	last := s.LastApplied()
	if s.ActiveChange == nil || last == nil || *s.ActiveChange != *last {
		t.Fatalf("expected active change to equal last applied")
	}
}

func TestNextAtEndReturnsFalseNoMutation(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	for n.Next() {
	}
	before := n.State()
	if n.Next() {
		t.Fatalf("expected false at end")
	}
	after := n.State()
	if before.CurrentStep != after.CurrentStep {
		t.Fatalf("state mutated on failed next")
	}
}

func TestPrevAtStartReturnsFalse(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	if n.Prev() {
		t.Fatalf("expected false at start")
	}
}

func TestNextThenPrevRestoresState(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	n.Next()
	n.Prev()
	s := n.State()
	if s.CurrentStep != 0 || len(s.AppliedChanges) != 0 {
		t.Fatalf("expected restored step 0, empty applied")
	}
	if s.StepDirection != DirBackward {
		t.Fatalf("expected direction backward after second call, got %v", s.StepDirection)
	}
	n.ClearActiveChange()
	if n.State().StepDirection != DirNone {
		t.Fatalf("expected direction none after clear")
	}
}

func TestGotoIdempotent(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	n.Goto(2)
	first := n.State()
	n.Goto(2)
	second := n.State()
	if first.CurrentStep != second.CurrentStep || len(first.AppliedChanges) != len(second.AppliedChanges) {
		t.Fatalf("goto not idempotent")
	}
}

func TestNextHunkThenPrevHunkRestores(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	n.NextHunk()
	applied1 := len(n.State().AppliedChanges)
	n.PrevHunk()
	s := n.State()
	if len(s.AppliedChanges) != 0 {
		t.Fatalf("expected applied changes restored to empty, had %d then %d", applied1, len(s.AppliedChanges))
	}
}

func TestPrevHunkAtZeroNoAppliedReturnsFalse(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	if n.PrevHunk() {
		t.Fatalf("expected false: nothing applied")
	}
}

func TestScenarioBBackwardPrimaryCursor(t *testing.T) {
	m := twoHunkModel()
	n := New(m)
	if len(m.Hunks) != 2 {
		t.Fatalf("fixture must produce 2 hunks, got %d", len(m.Hunks))
	}
	n.NextHunk()
	n.NextHunk()
	n.PrevHunk()
	s := n.State()
	last := s.LastApplied()
	if last == nil {
		t.Fatalf("expected a remaining applied change after unapplying hunk 2")
	}
	c := m.ChangeByID(*last)
	foundLine2 := false
	for _, sp := range c.Spans {
		if sp.NewText == "LINE2" || sp.Text == "LINE2" {
			foundLine2 = true
		}
	}
	if !foundLine2 {
		t.Fatalf("expected remaining active change to be the LINE2 modification, got %+v", c.Spans)
	}
}
