package diffmodel

// Hunk groups significant changes whose line distance falls within a
// proximity threshold. ChangeIDs is non-empty and strictly ordered.
type Hunk struct {
	ID        uint32
	ChangeIDs []uint32
}

// HunkProximityLines is the distance (in source lines) within which two
// significant changes are grouped into the same hunk. This constant is part
// of the ChangeModel producer's contract (spec Open Question c): the core
// navigator and view projection never re-hunk, they only consume the
// grouping a producer already committed to the model.
const HunkProximityLines = 3
