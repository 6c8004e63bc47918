package navigator

import "github.com/h0rv/stepdiff/internal/diffmodel"

// Navigator is a mutable state machine over a diffmodel.ChangeModel. It owns
// a StepState and exposes the step/hunk/cursor transitions that drive the
// viewer's play/rewind controls.
type Navigator struct {
	model *diffmodel.ChangeModel
	state StepState
}

// New creates a Navigator at step 0 (nothing applied) over model.
func New(model *diffmodel.ChangeModel) *Navigator {
	n := &Navigator{model: model}
	n.reset()
	n.state.TotalHunks = model.TotalHunks()
	n.state.showHunkExtentWhileStepping = false
	return n
}

// Model returns the underlying ChangeModel (read-only from the caller's
// perspective; the navigator never mutates it).
func (n *Navigator) Model() *diffmodel.ChangeModel { return n.model }

// State returns a copy of the current StepState for consumption by
// ViewProjection and DisplayMetrics.
func (n *Navigator) State() StepState { return n.state }

func (n *Navigator) reset() {
	n.state.CurrentStep = 0
	n.state.TotalSteps = n.model.TotalSteps()
	n.state.AppliedChanges = nil
	n.state.ActiveChange = nil
	n.state.AnimatingHunk = nil
	n.state.CurrentHunk = 0
	n.state.StepDirection = DirNone
	n.state.LastNavWasHunk = false
	n.state.HunkPreviewMode = false
}

// Next applies the next significant change. Returns false at end (no
// mutation).
func (n *Navigator) Next() bool {
	s := &n.state
	if s.IsAtEnd() {
		return false
	}
	id := n.model.SignificantChanges[s.CurrentStep]
	s.AppliedChanges = append(s.AppliedChanges, id)
	active := id
	s.ActiveChange = &active
	s.AnimatingHunk = nil
	s.LastNavWasHunk = false
	s.HunkPreviewMode = false
	s.CurrentStep++
	if h, ok := n.model.HunkForChange(id); ok {
		s.CurrentHunk = h
	}
	s.StepDirection = DirForward
	return true
}

// Prev unapplies the most recently applied significant change. Returns
// false at start (no mutation).
func (n *Navigator) Prev() bool {
	s := &n.state
	if s.IsAtStart() {
		return false
	}
	s.CurrentStep--
	last := len(s.AppliedChanges) - 1
	poppedID := s.AppliedChanges[last]
	s.AppliedChanges = s.AppliedChanges[:last]
	active := poppedID
	s.ActiveChange = &active
	if next := s.LastApplied(); next != nil {
		if h, ok := n.model.HunkForChange(*next); ok {
			s.CurrentHunk = h
		}
	} else {
		s.CurrentHunk = 0
	}
	s.StepDirection = DirBackward
	s.AnimatingHunk = nil
	s.LastNavWasHunk = false
	return true
}

// Goto clamps step to [0, total_steps-1], resets, and replays Next that
// many times.
func (n *Navigator) Goto(step uint32) {
	s := &n.state
	if s.TotalSteps > 0 && step > s.TotalSteps-1 {
		step = s.TotalSteps - 1
	}
	n.reset()
	for i := uint32(0); i < step; i++ {
		n.Next()
	}
}

// ClearActiveChange is called by the host after an animation completes (or
// after a one-frame snap). On a Backward step it leaves active_change
// pointing at the remaining applied change so the cursor visually lands
// there rather than on the vanished one.
func (n *Navigator) ClearActiveChange() {
	s := &n.state
	if s.StepDirection == DirBackward {
		s.ActiveChange = s.LastApplied()
	} else {
		s.ActiveChange = nil
	}
	s.AnimatingHunk = nil
	s.StepDirection = DirNone
}

// NextHunk advances the cursor to the next hunk (scanning forward from the
// current hunk, inclusive) that still has an unapplied change, and applies
// every unapplied change within it. Returns false if no hunk at or after
// the cursor has anything left to apply.
func (n *Navigator) NextHunk() bool {
	s := &n.state
	hunks := n.model.Hunks
	if len(hunks) == 0 {
		return false
	}
	applied := s.AppliedSet()
	startIdx := hunkIndex(hunks, s.CurrentHunk)
	if startIdx < 0 {
		startIdx = 0
	}
	for idx := startIdx; idx < len(hunks); idx++ {
		target := hunks[idx]
		before := len(s.AppliedChanges)
		for _, cid := range target.ChangeIDs {
			if !applied[cid] {
				s.AppliedChanges = append(s.AppliedChanges, cid)
				applied[cid] = true
			}
		}
		delta := len(s.AppliedChanges) - before
		if delta == 0 {
			continue
		}
		s.CurrentStep += uint32(delta)
		s.CurrentHunk = target.ID
		hid := target.ID
		s.AnimatingHunk = &hid
		s.LastNavWasHunk = true
		s.StepDirection = DirForward
		last := target.ChangeIDs[len(target.ChangeIDs)-1]
		s.ActiveChange = &last
		return true
	}
	return false
}

// PrevHunk scans backward from the current hunk (inclusive) for the first
// hunk with an applied change and unapplies every change within it. Returns
// false when nothing is applied anywhere at or before the cursor.
func (n *Navigator) PrevHunk() bool {
	s := &n.state
	hunks := n.model.Hunks
	if len(hunks) == 0 {
		return false
	}
	startIdx := hunkIndex(hunks, s.CurrentHunk)
	if startIdx < 0 {
		startIdx = len(hunks) - 1
	}
	applied := s.AppliedSet()
	for idx := startIdx; idx >= 0; idx-- {
		cur := hunks[idx]
		inHunk := make(map[uint32]bool, len(cur.ChangeIDs))
		any := false
		for _, cid := range cur.ChangeIDs {
			inHunk[cid] = true
			if applied[cid] {
				any = true
			}
		}
		if !any {
			continue
		}
		before := len(s.AppliedChanges)
		var remaining []uint32
		for _, id := range s.AppliedChanges {
			if inHunk[id] {
				continue
			}
			remaining = append(remaining, id)
		}
		s.AppliedChanges = remaining
		delta := before - len(remaining)
		s.CurrentStep -= uint32(delta)
		hid := cur.ID
		s.AnimatingHunk = &hid
		s.LastNavWasHunk = true
		s.StepDirection = DirBackward
		if last := s.LastApplied(); last != nil {
			if h, ok := n.model.HunkForChange(*last); ok {
				s.CurrentHunk = h
			}
			s.ActiveChange = last
		} else {
			s.CurrentHunk = 0
			first := cur.ChangeIDs[0]
			s.ActiveChange = &first
		}
		return true
	}
	return false
}

func hunkIndex(hunks []diffmodel.Hunk, id uint32) int {
	for i := range hunks {
		if hunks[i].ID == id {
			return i
		}
	}
	return -1
}

// GotoHunk resets and applies every change in every hunk up to and
// including h.
func (n *Navigator) GotoHunk(h uint32) {
	n.reset()
	for _, hunk := range n.model.Hunks {
		for _, cid := range hunk.ChangeIDs {
			n.state.AppliedChanges = append(n.state.AppliedChanges, cid)
			n.state.CurrentStep++
		}
		n.state.CurrentHunk = hunk.ID
		if hunk.ID >= h {
			break
		}
	}
}

// GotoHunkStart repositions active_change to the first change in the
// current hunk, without altering applied_changes.
func (n *Navigator) GotoHunkStart() {
	h := n.model.HunkByID(n.state.CurrentHunk)
	if h == nil || len(h.ChangeIDs) == 0 {
		return
	}
	id := h.ChangeIDs[0]
	n.state.ActiveChange = &id
}

// GotoHunkEnd repositions active_change to the last change in the current
// hunk, without altering applied_changes.
func (n *Navigator) GotoHunkEnd() {
	h := n.model.HunkByID(n.state.CurrentHunk)
	if h == nil || len(h.ChangeIDs) == 0 {
		return
	}
	id := h.ChangeIDs[len(h.ChangeIDs)-1]
	n.state.ActiveChange = &id
}

// SetCursorChange sets the free cursor used by no-step mode. Never alters
// applied_changes or current_step.
func (n *Navigator) SetCursorChange(id uint32) {
	v := id
	n.state.CursorChange = &v
	if h, ok := n.model.HunkForChange(id); ok {
		n.state.CurrentHunk = h
	}
}

// SetCursorHunk sets current_hunk without touching applied_changes.
func (n *Navigator) SetCursorHunk(h uint32) {
	n.state.CurrentHunk = h
}

// ClearCursorChange clears the free cursor.
func (n *Navigator) ClearCursorChange() {
	n.state.CursorChange = nil
}

// SetHunkScope sets current_hunk and clears any cursor_change, used when
// switching no-step scope to a whole hunk rather than a single change.
func (n *Navigator) SetHunkScope(h uint32) {
	n.state.CurrentHunk = h
	n.state.CursorChange = nil
}

// SetShowHunkExtentWhileStepping configures whether show_hunk_extent
// appears during ongoing single-stepping (the no-step view always shows it
// on the cursor hunk regardless of this flag).
func (n *Navigator) SetShowHunkExtentWhileStepping(show bool) {
	n.state.showHunkExtentWhileStepping = show
}

// ShowHunkExtentWhileStepping reports the configured flag.
func (n *Navigator) ShowHunkExtentWhileStepping() bool {
	return n.state.showHunkExtentWhileStepping
}
