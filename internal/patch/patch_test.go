package patch

import (
	"strings"
	"testing"

	"github.com/h0rv/stepdiff/internal/diffmodel"
)

func buildModel() *diffmodel.ChangeModel {
	return diffmodel.Build("one\ntwo\nthree\n", "one\nTWO\nthree\nfour\n")
}

func TestAddedLinesContainsInsertedText(t *testing.T) {
	model := buildModel()
	if len(model.Hunks) == 0 {
		t.Fatal("expected at least one hunk")
	}
	added := AddedLines(model, model.Hunks[0].ID)
	if added == "" {
		t.Fatal("expected non-empty added lines")
	}
}

func TestRemovedLinesContainsDeletedText(t *testing.T) {
	model := buildModel()
	removed := RemovedLines(model, model.Hunks[0].ID)
	if removed == "" {
		t.Fatal("expected non-empty removed lines")
	}
}

func TestUnifiedHunkHasHeader(t *testing.T) {
	model := buildModel()
	out := UnifiedHunk(model, model.Hunks[0].ID)
	if !strings.HasPrefix(out, "@@ -") {
		t.Fatalf("expected unified hunk header prefix, got %q", out)
	}
}

func TestFullPatchHasFileHeaders(t *testing.T) {
	model := buildModel()
	out := FullPatch(model, model.Hunks[0].ID, "example.txt")
	if !strings.Contains(out, "--- a/example.txt") || !strings.Contains(out, "+++ b/example.txt") {
		t.Fatalf("expected file headers in patch, got %q", out)
	}
}

func TestUnifiedHunkUnknownHunkIsEmpty(t *testing.T) {
	model := buildModel()
	if out := UnifiedHunk(model, 99999); out != "" {
		t.Fatalf("expected empty string for unknown hunk, got %q", out)
	}
}
