// Package theme derives a UITheme from a named chroma style, extended with
// the pending-state and hunk-extent styles the stepper's animation phases
// need.
package theme

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// UITheme holds all colors and styles derived from a chroma theme.
type UITheme struct {
	Accent    tcell.Color
	Highlight tcell.Color
	Added     tcell.Color
	Removed   tcell.Color

	Default     tcell.Style
	Dim         tcell.Style
	FileHeader  tcell.Style
	HunkHeader  tcell.Style
	DiffAdded   tcell.Style
	DiffRemoved tcell.Style
	Label       tcell.Style
	LineNo      tcell.Style
	StatusBar   tcell.Style
	SearchCur   tcell.Style
	Flash       tcell.Style

	// Pending* styles color a line while its change is mid-animation
	// (PendingInsert/PendingDelete/PendingModify kinds from internal/view).
	PendingInsert tcell.Style
	PendingDelete tcell.Style
	PendingModify tcell.Style

	// HunkExtent marks the gutter for lines inside the hunk currently
	// animating or last navigated to via NextHunk/PrevHunk.
	HunkExtent tcell.Style

	BgAdded   tcell.Color
	BgRemoved tcell.Color
}

func knownStyle(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// New builds a UITheme from the named chroma style, falling back to
// "monokai" for an unknown name.
func New(name string) UITheme {
	cs := styles.Get(name)
	if !knownStyle(name) {
		cs = styles.Get("monokai")
	}

	accent := chromaColor(cs, chroma.Keyword, tcell.ColorAqua)
	highlight := chromaColor(cs, chroma.LiteralString, tcell.ColorYellow)
	comment := chromaColor(cs, chroma.Comment, tcell.ColorAqua)
	fg := chromaColor(cs, chroma.Background, tcell.ColorWhite)

	added := tcell.ColorGreen
	removed := tcell.ColorRed
	pendingColor := chromaColor(cs, chroma.NameVariable, tcell.ColorOrange)

	base := tcell.StyleDefault
	bgAdded, bgRemoved := computeDiffBg(cs)

	return UITheme{
		Accent:    accent,
		Highlight: highlight,
		Added:     added,
		Removed:   removed,

		Default:     base,
		Dim:         base.Dim(true),
		FileHeader:  base.Bold(true).Foreground(fg),
		HunkHeader:  base.Foreground(comment),
		DiffAdded:   base.Foreground(added),
		DiffRemoved: base.Foreground(removed),
		Label:       base.Foreground(highlight).Bold(true),
		LineNo:      base.Dim(true),
		StatusBar:   base.Background(accent).Foreground(contrastFg(accent)),
		SearchCur:   base.Background(highlight).Foreground(tcell.ColorBlack).Bold(true),
		Flash:       base.Foreground(added).Bold(true).Reverse(true),

		PendingInsert: base.Foreground(added).Italic(true),
		PendingDelete: base.Foreground(removed).Italic(true).Strikethrough(true),
		PendingModify: base.Foreground(pendingColor).Italic(true),

		HunkExtent: base.Foreground(accent).Dim(true),

		BgAdded:   bgAdded,
		BgRemoved: bgRemoved,
	}
}

func chromaColor(s *chroma.Style, t chroma.TokenType, fallback tcell.Color) tcell.Color {
	entry := s.Get(t)
	if entry.Colour.IsSet() {
		return tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		)
	}
	return fallback
}

func computeDiffBg(cs *chroma.Style) (bgAdded, bgRemoved tcell.Color) {
	bgEntry := cs.Get(chroma.Background)
	if !bgEntry.Background.IsSet() {
		return tcell.NewRGBColor(0x1a, 0x3a, 0x1a), tcell.NewRGBColor(0x3a, 0x1a, 0x1a)
	}

	r := int32(bgEntry.Background.Red())
	g := int32(bgEntry.Background.Green())
	b := int32(bgEntry.Background.Blue())

	if bgEntry.Background.Brightness() < 0.5 {
		bgAdded = tcell.NewRGBColor(r, clamp32(g+32), b)
		bgRemoved = tcell.NewRGBColor(clamp32(r+32), g, b)
	} else {
		bgAdded = tcell.NewRGBColor(clamp32(r-20), g, clamp32(b-20))
		bgRemoved = tcell.NewRGBColor(r, clamp32(g-20), clamp32(b-20))
	}
	return
}

func contrastFg(bg tcell.Color) tcell.Color {
	r, g, b := bg.RGB()
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if lum > 128 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func clamp32(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ListThemes prints all available chroma theme names and exits, backing
// the --themes CLI flag.
func ListThemes() {
	for _, name := range styles.Names() {
		fmt.Println(name)
	}
	os.Exit(0)
}
