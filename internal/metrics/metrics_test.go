package metrics

import (
	"testing"

	"github.com/h0rv/stepdiff/internal/navigator"
	"github.com/h0rv/stepdiff/internal/view"
)

func TestScenarioDEvolutionIdleSkipsDeleted(t *testing.T) {
	lines := []view.ViewLine{
		{Kind: view.Context},
		{Kind: view.Deleted},
		{Kind: view.Deleted},
		{Kind: view.Context, IsPrimaryActive: true},
	}
	m := Compute(lines, Evolution, 0, navigator.DirNone, view.Idle)
	if m.DisplayLen != 2 {
		t.Fatalf("expected display_len=2, got %d", m.DisplayLen)
	}
	if m.ActiveIndex != 1 {
		t.Fatalf("expected active index 1, got %d", m.ActiveIndex)
	}
}

func TestScenarioDEvolutionFadeShowsPendingDelete(t *testing.T) {
	lines := []view.ViewLine{
		{Kind: view.Context},
		{Kind: view.PendingDelete, IsActive: true},
		{Kind: view.Deleted},
		{Kind: view.Context, IsPrimaryActive: true},
	}
	m := Compute(lines, Evolution, 0, navigator.DirNone, view.FadeOut)
	if m.DisplayLen != 3 {
		t.Fatalf("expected display_len=3 during fade, got %d", m.DisplayLen)
	}
	if m.ActiveIndex != 1 {
		t.Fatalf("expected active index 1, got %d", m.ActiveIndex)
	}
}

func TestScenarioDEvolutionIdleHidesInactivePendingDelete(t *testing.T) {
	lines := []view.ViewLine{
		{Kind: view.Context},
		{Kind: view.PendingDelete, IsActive: false},
		{Kind: view.Context, IsPrimaryActive: true},
	}
	m := Compute(lines, Evolution, 0, navigator.DirNone, view.Idle)
	if m.DisplayLen != 2 {
		t.Fatalf("expected display_len=2, got %d", m.DisplayLen)
	}
	if m.ActiveIndex != 1 {
		t.Fatalf("expected active index 1, got %d", m.ActiveIndex)
	}
}

func TestScenarioDEvolutionIdleHidesActivePendingDeleteAtRest(t *testing.T) {
	lines := []view.ViewLine{
		{Kind: view.Context},
		{Kind: view.PendingDelete, IsActive: true},
		{Kind: view.Deleted},
		{Kind: view.Context, IsPrimaryActive: true},
	}
	m := Compute(lines, Evolution, 0, navigator.DirNone, view.Idle)
	if m.DisplayLen != 2 {
		t.Fatalf("expected display_len=2 at rest, got %d", m.DisplayLen)
	}
	if m.ActiveIndex != 1 {
		t.Fatalf("expected active index 1, got %d", m.ActiveIndex)
	}
}

func TestSplitTieBreakPrefersNewOnForward(t *testing.T) {
	lines := []view.ViewLine{
		{OldLine: 1, NewLine: 1},
		{OldLine: 2, IsPrimaryActive: true},
		{NewLine: 2, IsPrimaryActive: false},
	}
	// Non-tie path first: the primary line exists only on the old side, so
	// the old-side index is selected.
	m := Compute(lines, Split, 0, navigator.DirForward, view.Idle)
	if m.ActiveIndex != m.ActiveIndexOld {
		t.Fatalf("expected old-side primary selected, got %+v", m)
	}

	// Tie: a primary line present on both sides sits at old index 2 and new
	// index 0, so scroll=1 puts both sides at distance 1; Forward picks new.
	tie := []view.ViewLine{
		{OldLine: 1, Kind: view.Deleted},
		{OldLine: 2, Kind: view.Deleted},
		{OldLine: 3, NewLine: 1, IsPrimaryActive: true},
	}
	m = Compute(tie, Split, 1, navigator.DirForward, view.Idle)
	if m.ActiveIndexOld != 2 || m.ActiveIndexNew != 0 {
		t.Fatalf("expected old=2 new=0 primaries, got %+v", m)
	}
	if m.ActiveIndex != m.ActiveIndexNew {
		t.Fatalf("expected new-side primary selected on a Forward tie, got %+v", m)
	}
}
