// Package highlight tokenizes source lines into tcell-styled spans via
// chroma, caching lexer lookups per (extension, side) pair; a file without
// an extension is keyed by its base name.
package highlight

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Side identifies which half of a diff a line belongs to, for lexer
// cache-key purposes.
type Side int

const (
	Old Side = iota
	New
)

// StyledSpan is a run of text with a tcell style applied.
type StyledSpan struct {
	Text  string
	Style tcell.Style
}

type lexerKey struct {
	ext  string
	side Side
}

// Highlighter tokenizes source lines and maps tokens to tcell styles. It
// caches lexer lookups by (extension, side) and uses a chroma style
// (theme) to determine colors.
type Highlighter struct {
	mu        sync.RWMutex
	lexers    map[lexerKey]chroma.Lexer
	style     *chroma.Style
	themeName string
}

// NewHighlighter returns a ready-to-use Highlighter with the "monokai" theme.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		lexers:    make(map[lexerKey]chroma.Lexer),
		style:     styles.Get("monokai"),
		themeName: "monokai",
	}
}

func knownStyle(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// SetTheme switches to the named chroma theme. If the name is not
// recognized the current theme is kept.
func (h *Highlighter) SetTheme(name string) {
	if !knownStyle(name) {
		return
	}
	if s := styles.Get(name); s != nil {
		h.style = s
		h.themeName = name
	}
}

// ThemeName returns the name of the active theme.
func (h *Highlighter) ThemeName() string {
	return h.themeName
}

// Highlight tokenizes a single line of text and returns styled spans. The
// filename and side together select a cached lexer. If no lexer is found
// the whole line is returned as a single default-styled span.
func (h *Highlighter) Highlight(filename string, side Side, text string) []StyledSpan {
	if text == "" {
		return nil
	}

	lex := h.lexerFor(filename, side)
	if lex == nil {
		return []StyledSpan{{Text: text, Style: tcell.StyleDefault}}
	}

	iter, err := lex.Tokenise(nil, text)
	if err != nil {
		return []StyledSpan{{Text: text, Style: tcell.StyleDefault}}
	}

	var spans []StyledSpan
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		val := strings.TrimRight(tok.Value, "\n")
		if val == "" {
			continue
		}
		spans = append(spans, StyledSpan{
			Text:  val,
			Style: h.tokenStyle(tok.Type),
		})
	}
	return spans
}

func (h *Highlighter) lexerFor(filename string, side Side) chroma.Lexer {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = filepath.Base(filename)
	}
	key := lexerKey{ext: ext, side: side}

	h.mu.RLock()
	lex, ok := h.lexers[key]
	h.mu.RUnlock()
	if ok {
		return lex
	}

	lex = lexers.Match(filename)
	if lex != nil {
		lex = chroma.Coalesce(lex)
	}

	h.mu.Lock()
	h.lexers[key] = lex
	h.mu.Unlock()

	return lex
}

// tokenStyle converts a chroma token type to a tcell style using the
// active theme. Only foreground color is applied so diff coloring is
// preserved.
func (h *Highlighter) tokenStyle(t chroma.TokenType) tcell.Style {
	entry := h.style.Get(t)
	style := tcell.StyleDefault

	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	return style
}
