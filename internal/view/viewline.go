// Package view implements the pure ViewProjection: a function from
// (ChangeModel, StepState, AnimationFrame, FoldMode) to a sequence of
// ViewLine, deciding what text each line shows and where the primary/extent
// markers live.
package view

// AnimationFrame is the phase of an in-flight step animation.
type AnimationFrame int

const (
	Idle AnimationFrame = iota
	FadeOut
	FadeIn
)

// LineKind classifies a ViewLine for rendering.
type LineKind int

const (
	Context LineKind = iota
	Inserted
	Deleted
	Modified
	PendingInsert
	PendingDelete
	PendingModify
)

// SpanKind classifies a ViewSpan.
type SpanKind int

const (
	SpanEqual SpanKind = iota
	SpanInserted
	SpanDeleted
	SpanPendingInsert
	SpanPendingDelete
)

// ViewSpan is one styled run within a ViewLine's content.
type ViewSpan struct {
	Text string
	Kind SpanKind
}

// ViewLine is one emitted, renderable line.
type ViewLine struct {
	Content         string
	Spans           []ViewSpan
	Kind            LineKind
	OldLine         int // 0 = absent
	NewLine         int // 0 = absent
	IsActive        bool
	IsActiveChange  bool
	IsPrimaryActive bool
	ShowHunkExtent  bool
	ChangeID        uint32
	HasChangeID     bool
	HunkIndex       *uint32
	HasChanges      bool
}

// FoldMode configures context-line folding.
type FoldMode struct {
	Enabled   bool
	Threshold int
}
