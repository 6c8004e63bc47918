package render

import (
	"testing"

	"github.com/h0rv/stepdiff/internal/metrics"
	"github.com/h0rv/stepdiff/internal/session"
	"github.com/h0rv/stepdiff/internal/view"
)

func TestFilterEvolutionDropsDeletedKeepsActivePendingDelete(t *testing.T) {
	lines := []view.ViewLine{
		{Content: "a", Kind: view.Context},
		{Content: "b", Kind: view.Deleted},
		{Content: "c", Kind: view.PendingDelete, IsActive: true},
		{Content: "d", Kind: view.PendingDelete, IsActive: false},
		{Content: "e", Kind: view.Inserted},
	}
	got := filterEvolution(lines)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d: %+v", len(got), got)
	}
	for _, want := range []string{"a", "c", "e"} {
		found := false
		for _, l := range got {
			if l.Content == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected content %q to survive filtering", want)
		}
	}
}

func TestSplitColumnsSeparatesOldAndNew(t *testing.T) {
	lines := []view.ViewLine{
		{Content: "ctx", Kind: view.Context, OldLine: 1, NewLine: 1},
		{Content: "del", Kind: view.Deleted, OldLine: 2},
		{Content: "ins", Kind: view.Inserted, NewLine: 2},
	}
	old, new_ := splitColumns(lines)
	if len(old) != 2 {
		t.Errorf("expected 2 old lines (ctx, del), got %d", len(old))
	}
	if len(new_) != 2 {
		t.Errorf("expected 2 new lines (ctx, ins), got %d", len(new_))
	}
}

func TestSearchMaskMarksMatches(t *testing.T) {
	mask := searchMask("fooBarFoo", "foo")
	if mask == nil {
		t.Fatal("expected non-nil mask")
	}
	for i := 0; i < 3; i++ {
		if !mask[i] {
			t.Errorf("expected index %d to be marked", i)
		}
	}
	for i := 6; i < 9; i++ {
		if !mask[i] {
			t.Errorf("expected index %d (second match) to be marked", i)
		}
	}
}

func TestSearchMaskEmptyQuery(t *testing.T) {
	if mask := searchMask("anything", ""); mask != nil {
		t.Errorf("expected nil mask for empty query, got %v", mask)
	}
}

func TestFormatBlameLabelUncommitted(t *testing.T) {
	got := formatBlameLabel(session.AuthorLine{Uncommitted: true})
	if got != "uncommitted" {
		t.Errorf("expected 'uncommitted', got %q", got)
	}
}

func TestFormatBlameLabelTruncatesCommitAndAuthor(t *testing.T) {
	got := formatBlameLabel(session.AuthorLine{Commit: "abcdef1234567890", Author: "verylongname"})
	if got != "abcdef1 verylong" {
		t.Errorf("unexpected label: %q", got)
	}
}

func TestModeLabel(t *testing.T) {
	cases := map[metrics.ViewMode]string{
		metrics.Unified:   "unified",
		metrics.Split:     "split",
		metrics.Evolution: "evolution",
		metrics.Blame:     "blame",
	}
	for mode, want := range cases {
		if got := modeLabel(mode); got != want {
			t.Errorf("modeLabel(%v) = %q, want %q", mode, got, want)
		}
	}
}
