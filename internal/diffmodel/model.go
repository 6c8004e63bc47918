package diffmodel

// ChangeModel is the immutable-after-construction per-file diff: ordered
// changes, the subset that is significant, hunks grouping proximate
// significant changes, and aggregate insertion/deletion counts.
//
// Invariants (enforced by Build, assumed by every consumer):
//   - SignificantChanges is strictly increasing.
//   - every id in SignificantChanges belongs to exactly one hunk.
//   - each Hunk.ChangeIDs is a contiguous ordered subset of SignificantChanges.
//   - Insertions/Deletions count Insert/Delete spans (a Replace counts one
//     of each) across all changes.
type ChangeModel struct {
	Changes            []Change
	SignificantChanges []uint32
	Hunks              []Hunk
	Insertions         uint32
	Deletions          uint32

	changeByID    map[uint32]*Change
	hunkForChange map[uint32]uint32
}

// index lazily builds the lookup maps used by ChangeByID / HunkForChange.
// Called once from Build; safe to call again if Changes/Hunks were
// populated by hand (e.g. in tests) before first use.
func (m *ChangeModel) index() {
	m.changeByID = make(map[uint32]*Change, len(m.Changes))
	for i := range m.Changes {
		m.changeByID[m.Changes[i].ID] = &m.Changes[i]
	}
	m.hunkForChange = make(map[uint32]uint32, len(m.SignificantChanges))
	for _, h := range m.Hunks {
		for _, cid := range h.ChangeIDs {
			m.hunkForChange[cid] = h.ID
		}
	}
}

// ensureIndex lazily indexes on first lookup, so callers that build a
// ChangeModel literal (tests, alternate producers) don't need to remember
// to call an explicit Finalize step.
func (m *ChangeModel) ensureIndex() {
	if m.changeByID == nil || m.hunkForChange == nil {
		m.index()
	}
}

// ChangeByID returns the change with the given id, or nil if absent.
func (m *ChangeModel) ChangeByID(id uint32) *Change {
	m.ensureIndex()
	return m.changeByID[id]
}

// HunkForChange maps a significant change id to its hunk id. Total over
// SignificantChanges; returns (0, false) for a change id not in any hunk
// (line-level Equal changes are never significant, so this only happens for
// malformed input from the diff producer).
func (m *ChangeModel) HunkForChange(changeID uint32) (uint32, bool) {
	m.ensureIndex()
	h, ok := m.hunkForChange[changeID]
	return h, ok
}

// HunkByID returns the hunk with the given id, or nil if absent.
func (m *ChangeModel) HunkByID(id uint32) *Hunk {
	for i := range m.Hunks {
		if m.Hunks[i].ID == id {
			return &m.Hunks[i]
		}
	}
	return nil
}

// TotalSteps is len(SignificantChanges) + 1 (step 0 is "nothing applied").
func (m *ChangeModel) TotalSteps() uint32 {
	return uint32(len(m.SignificantChanges)) + 1
}

// TotalHunks is len(Hunks).
func (m *ChangeModel) TotalHunks() uint32 {
	return uint32(len(m.Hunks))
}
