package diffmodel

// Change is a contiguous diff operation at one location: an ordered list of
// spans of possibly differing kinds. ID is a stable dense index (0..N) into
// the owning ChangeModel's Changes slice.
type Change struct {
	ID    uint32
	Spans []ChangeSpan
}

// IsWordLevel reports whether this change carries more than one span (and
// therefore needs word-level span rendering rather than a single line
// swap).
func (c Change) IsWordLevel() bool {
	return len(c.Spans) > 1
}

// IsSignificant reports whether at least one span is non-Equal.
func (c Change) IsSignificant() bool {
	for _, s := range c.Spans {
		if s.Kind != Equal {
			return true
		}
	}
	return false
}

// AllInsertOnly reports whether a word-level change's non-Equal spans are
// entirely Insert (no Delete/Replace span present), with at least one
// Insert span. Equal spans (shared context within the same logical line)
// are allowed alongside them.
func (c Change) AllInsertOnly() bool {
	any := false
	for _, s := range c.Spans {
		switch s.Kind {
		case Delete, Replace:
			return false
		case Insert:
			any = true
		}
	}
	return any
}

// AllDeleteOnly reports whether a word-level change's non-Equal spans are
// entirely Delete (no Insert/Replace span present), with at least one
// Delete span.
func (c Change) AllDeleteOnly() bool {
	any := false
	for _, s := range c.Spans {
		switch s.Kind {
		case Insert, Replace:
			return false
		case Delete:
			any = true
		}
	}
	return any
}
