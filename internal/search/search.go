// Package search implements the incremental line-search overlay, scanning
// view.ViewLine content for matches as the query is typed.
package search

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/h0rv/stepdiff/internal/view"
)

// Search holds incremental-search state: whether input is active, the
// current query, and the set of matching display-line indices.
type Search struct {
	Active  bool
	Query   string
	Matches []int
	Idx     int
}

// Start enters search-input mode.
func (s *Search) Start() {
	s.Active = true
	s.Query = ""
	s.Matches = nil
	s.Idx = -1
}

// End exits search-input mode but keeps matches highlighted.
func (s *Search) End() {
	s.Active = false
}

// Clear exits search mode and discards matches.
func (s *Search) Clear() {
	s.Active = false
	s.Query = ""
	s.Matches = nil
	s.Idx = -1
}

// HandleKey processes one key event while search input is active. It
// returns the index to scroll to, or -1 if no jump is warranted.
func (s *Search) HandleKey(ev *tcell.EventKey, lines []view.ViewLine) int {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Clear()
		return -1
	case tcell.KeyEnter:
		s.UpdateMatches(lines)
		target := -1
		if len(s.Matches) > 0 {
			s.Idx = 0
			target = s.Matches[0]
		}
		s.End()
		return target
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.Query) > 0 {
			s.Query = s.Query[:len(s.Query)-1]
			s.UpdateMatches(lines)
		}
		return -1
	case tcell.KeyRune:
		s.Query += string(ev.Rune())
		s.UpdateMatches(lines)
		return -1
	}
	return -1
}

// UpdateMatches rescans lines for Query (case-insensitive).
func (s *Search) UpdateMatches(lines []view.ViewLine) {
	s.Matches = nil
	s.Idx = -1

	if s.Query == "" {
		return
	}

	query := strings.ToLower(s.Query)
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line.Content), query) {
			s.Matches = append(s.Matches, i)
		}
	}
}

// Next returns the display index of the next match, wrapping around.
func (s *Search) Next() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.Idx++
	if s.Idx >= len(s.Matches) {
		s.Idx = 0
	}
	return s.Matches[s.Idx], true
}

// Prev returns the display index of the previous match, wrapping around.
func (s *Search) Prev() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.Idx--
	if s.Idx < 0 {
		s.Idx = len(s.Matches) - 1
	}
	return s.Matches[s.Idx], true
}

// IsMatch reports whether a given display-line index is a current match.
func (s *Search) IsMatch(lineIdx int) bool {
	for _, idx := range s.Matches {
		if idx == lineIdx {
			return true
		}
	}
	return false
}
