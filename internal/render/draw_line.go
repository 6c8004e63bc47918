package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/highlight"
	"github.com/h0rv/stepdiff/internal/theme"
	"github.com/h0rv/stepdiff/internal/view"
)

// spanStyle maps a ViewSpan's kind to a base tcell style.
func spanStyle(th theme.UITheme, kind view.SpanKind) tcell.Style {
	switch kind {
	case view.SpanInserted:
		return th.DiffAdded
	case view.SpanDeleted:
		return th.DiffRemoved
	case view.SpanPendingInsert:
		return th.PendingInsert
	case view.SpanPendingDelete:
		return th.PendingDelete
	default:
		return th.Default
	}
}

// applyDiffBg tints a style with the theme's added/removed background for
// spans that represent an insertion or deletion.
func applyDiffBg(th theme.UITheme, style tcell.Style, kind view.SpanKind) tcell.Style {
	switch kind {
	case view.SpanInserted, view.SpanPendingInsert:
		return style.Background(th.BgAdded)
	case view.SpanDeleted, view.SpanPendingDelete:
		return style.Background(th.BgRemoved)
	default:
		return style
	}
}

// buildRuneStyles produces one tcell.Style per rune of line.Content, either
// from the diff span boundaries (Syntax off) or from chroma tokenization of
// the whole line (Syntax on).
func buildRuneStyles(line view.ViewLine, th theme.UITheme, hl *highlight.Highlighter, filename string, syntax, diffBg bool) []tcell.Style {
	runeCount := len([]rune(line.Content))
	if syntax && hl != nil && filename != "" {
		side := highlight.New
		if line.Kind == view.Deleted || line.Kind == view.PendingDelete {
			side = highlight.Old
		}
		spans := hl.Highlight(filename, side, line.Content)
		styles := make([]tcell.Style, 0, runeCount)
		dim := (line.Kind == view.Deleted || line.Kind == view.PendingDelete) && !diffBg
		for _, span := range spans {
			st := st2tcell(span, th, line, diffBg, dim)
			for range []rune(span.Text) {
				styles = append(styles, st)
			}
		}
		if len(styles) < runeCount {
			fill := th.Default
			if dim {
				fill = fill.Dim(true)
			}
			for len(styles) < runeCount {
				styles = append(styles, fill)
			}
		}
		if len(styles) > runeCount {
			styles = styles[:runeCount]
		}
		return styles
	}

	styles := make([]tcell.Style, 0, runeCount)
	if len(line.Spans) == 0 {
		st := th.Default
		for i := 0; i < runeCount; i++ {
			styles = append(styles, st)
		}
		return styles
	}
	for _, span := range line.Spans {
		st := spanStyle(th, span.Kind)
		if diffBg {
			st = applyDiffBg(th, st, span.Kind)
		} else if span.Kind == view.SpanDeleted {
			st = st.Dim(true)
		}
		for range []rune(span.Text) {
			styles = append(styles, st)
		}
	}
	return styles
}

func st2tcell(span highlight.StyledSpan, th theme.UITheme, line view.ViewLine, diffBg, dim bool) tcell.Style {
	st := span.Style
	if dim {
		st = st.Dim(true)
	}
	if diffBg {
		switch line.Kind {
		case view.Inserted, view.PendingInsert:
			st = st.Background(th.BgAdded)
		case view.Deleted, view.PendingDelete:
			st = st.Background(th.BgRemoved)
		}
	}
	return st
}

// searchMask returns a boolean slice aligned to []rune(text) marking which
// runes fall within a case-insensitive match of query.
func searchMask(text, query string) []bool {
	if query == "" {
		return nil
	}
	runes := []rune(strings.ToLower(text))
	q := []rune(strings.ToLower(query))
	if len(q) == 0 || len(q) > len(runes) {
		return nil
	}
	mask := make([]bool, len(runes))
	for i := 0; i <= len(runes)-len(q); i++ {
		if string(runes[i:i+len(q)]) == string(q) {
			for j := 0; j < len(q); j++ {
				mask[i+j] = true
			}
		}
	}
	return mask
}

// drawRunes writes runes (already style-resolved) to the screen starting at
// (col, y), skipping the first scrollX runes and stopping at maxCol. Runes
// covered by mask are redrawn with searchStyle.
func drawRunes(screen tcell.Screen, col, y int, text string, styles []tcell.Style, scrollX, maxCol int, mask []bool, searchStyle tcell.Style) int {
	runes := []rune(text)
	for i := scrollX; i < len(runes); i++ {
		if col >= maxCol {
			break
		}
		st := tcell.StyleDefault
		if i < len(styles) {
			st = styles[i]
		}
		if i < len(mask) && mask[i] {
			st = searchStyle
		}
		screen.SetContent(col, y, runes[i], nil, st)
		col++
	}
	return col
}

// drawPlainText writes text verbatim in a single style, returning the final
// column. Used for gutters, chrome, and unstyled fills.
func drawPlainText(screen tcell.Screen, col, y int, text string, style tcell.Style, maxCol int) int {
	for _, r := range text {
		if col >= maxCol {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	return col
}

// clearRow fills columns [col, width) with spaces in the given style.
func clearRow(screen tcell.Screen, col, y, width int, style tcell.Style) {
	for col < width {
		screen.SetContent(col, y, ' ', nil, style)
		col++
	}
}
