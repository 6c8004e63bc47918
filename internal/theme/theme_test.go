package theme

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

func TestClamp32(t *testing.T) {
	tests := []struct {
		in, want int32
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clamp32(tt.in); got != tt.want {
			t.Errorf("clamp32(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChromaColorKnownToken(t *testing.T) {
	cs := styles.Get("monokai")
	if cs == nil {
		t.Fatal("monokai style not found")
	}

	got := chromaColor(cs, chroma.Keyword, tcell.ColorAqua)
	if got == tcell.ColorAqua {
		t.Error("expected chromaColor to return a theme color for Keyword, got the fallback")
	}
}

func TestChromaColorFallback(t *testing.T) {
	cs := styles.Get("monokai")
	if cs == nil {
		t.Fatal("monokai style not found")
	}

	fallback := tcell.ColorFuchsia
	got := chromaColor(cs, chroma.TokenType(9999), fallback)
	_ = got
}

func TestComputeDiffBgDarkTheme(t *testing.T) {
	cs := styles.Get("monokai")
	if cs == nil {
		t.Fatal("monokai style not found")
	}

	bgAdded, bgRemoved := computeDiffBg(cs)
	if bgAdded == bgRemoved {
		t.Error("expected bgAdded and bgRemoved to be distinct colors")
	}
}

func TestComputeDiffBgNilBackground(t *testing.T) {
	cs := styles.Get("bw")
	if cs == nil {
		t.Skip("bw style not available")
	}

	bgAdded, bgRemoved := computeDiffBg(cs)
	_ = bgAdded
	_ = bgRemoved
}

func TestNewMonokai(t *testing.T) {
	th := New("monokai")

	if th.Added == 0 {
		t.Error("expected Added color to be non-zero")
	}
	if th.Removed == 0 {
		t.Error("expected Removed color to be non-zero")
	}
	if th.Accent == 0 {
		t.Error("expected Accent color to be non-zero")
	}
	if th.Highlight == 0 {
		t.Error("expected Highlight color to be non-zero")
	}
}

func TestNewFallback(t *testing.T) {
	th := New("nonexistent-theme-name-12345")
	monokai := New("monokai")

	if th.Accent != monokai.Accent {
		t.Errorf("expected fallback theme accent %v to match monokai %v", th.Accent, monokai.Accent)
	}
	if th.Highlight != monokai.Highlight {
		t.Errorf("expected fallback theme highlight %v to match monokai %v", th.Highlight, monokai.Highlight)
	}
}

func TestNewLightTheme(t *testing.T) {
	th := New("github")

	if th.BgAdded == th.BgRemoved {
		t.Error("expected light theme bgAdded and bgRemoved to differ")
	}
}

func TestNewPendingStylesDistinctFromDiffStyles(t *testing.T) {
	th := New("monokai")
	if th.PendingInsert == th.DiffAdded {
		t.Error("expected PendingInsert to be visually distinct from DiffAdded")
	}
	if th.PendingDelete == th.DiffRemoved {
		t.Error("expected PendingDelete to be visually distinct from DiffRemoved")
	}
}
