// Package navigator implements the mutable step/hunk/cursor state machine
// that drives an animated walk through a diffmodel.ChangeModel.
package navigator

// StepDirection records which way the most recent single-step navigation
// moved, driving the ViewProjection's show-new phase selector.
type StepDirection int

const (
	DirNone StepDirection = iota
	DirForward
	DirBackward
)

// StepState is the full mutable state of a Navigator. See
// diffmodel.ChangeModel for the immutable model it walks.
type StepState struct {
	CurrentStep  uint32
	TotalSteps   uint32
	AppliedChanges []uint32 // LIFO stack; index 0 is oldest, last is most recent

	ActiveChange  *uint32
	AnimatingHunk *uint32
	CurrentHunk   uint32
	TotalHunks    uint32

	StepDirection   StepDirection
	LastNavWasHunk  bool

	CursorChange         *uint32
	HunkPreviewMode      bool
	PreviewFromBackward  bool

	showHunkExtentWhileStepping bool
}

// IsAtStart reports current_step == 0.
func (s *StepState) IsAtStart() bool { return s.CurrentStep == 0 }

// IsAtEnd reports current_step == total_steps-1.
func (s *StepState) IsAtEnd() bool {
	if s.TotalSteps == 0 {
		return true
	}
	return s.CurrentStep == s.TotalSteps-1
}

// AppliedSet returns the applied change ids as a lookup set, used by
// ViewProjection's is_applied check.
func (s *StepState) AppliedSet() map[uint32]bool {
	set := make(map[uint32]bool, len(s.AppliedChanges))
	for _, id := range s.AppliedChanges {
		set[id] = true
	}
	return set
}

// LastApplied returns the most recently applied change id, or nil if none.
func (s *StepState) LastApplied() *uint32 {
	if len(s.AppliedChanges) == 0 {
		return nil
	}
	v := s.AppliedChanges[len(s.AppliedChanges)-1]
	return &v
}
