package search

import (
	"testing"

	"github.com/h0rv/stepdiff/internal/view"
)

func TestUpdateMatchesFindsCorrectLines(t *testing.T) {
	lines := []view.ViewLine{
		{Content: "+\tHost:  \"0.0.0.0\","},
		{Content: " \treturn &Config{"},
		{Content: "-\tHost:  \"localhost\","},
		{Content: "+\tDebug: true,"},
		{Content: "func LoadConfig() *Config {"},
	}

	var s Search
	s.Query = "host"
	s.UpdateMatches(lines)

	if len(s.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(s.Matches))
	}
	if s.Matches[0] != 0 {
		t.Errorf("expected first match at index 0, got %d", s.Matches[0])
	}
	if s.Matches[1] != 2 {
		t.Errorf("expected second match at index 2, got %d", s.Matches[1])
	}
}

func TestUpdateMatchesCaseInsensitive(t *testing.T) {
	lines := []view.ViewLine{
		{Content: "Hello World"},
		{Content: "hello world"},
		{Content: "HELLO WORLD"},
	}

	var s Search
	s.Query = "HELLO"
	s.UpdateMatches(lines)

	if len(s.Matches) != 3 {
		t.Fatalf("expected 3 matches for case-insensitive search, got %d", len(s.Matches))
	}
}

func TestUpdateMatchesEmptyQuery(t *testing.T) {
	lines := []view.ViewLine{{Content: "some text"}}

	var s Search
	s.Query = ""
	s.UpdateMatches(lines)

	if len(s.Matches) != 0 {
		t.Errorf("expected 0 matches for empty query, got %d", len(s.Matches))
	}
}

func TestUpdateMatchesNoResults(t *testing.T) {
	lines := []view.ViewLine{{Content: "alpha"}, {Content: "beta"}}

	var s Search
	s.Query = "gamma"
	s.UpdateMatches(lines)

	if len(s.Matches) != 0 {
		t.Errorf("expected 0 matches, got %d", len(s.Matches))
	}
	if s.Idx != -1 {
		t.Errorf("expected Idx -1, got %d", s.Idx)
	}
}

func TestIsMatch(t *testing.T) {
	s := Search{Matches: []int{1, 5, 10}}

	if !s.IsMatch(1) {
		t.Error("expected line 1 to be a match")
	}
	if !s.IsMatch(5) {
		t.Error("expected line 5 to be a match")
	}
	if s.IsMatch(3) {
		t.Error("expected line 3 to NOT be a match")
	}
}

func TestNextWraps(t *testing.T) {
	s := Search{Matches: []int{3, 8, 15}, Idx: -1}

	if idx, ok := s.Next(); !ok || idx != 3 {
		t.Errorf("expected first next to land on 3, got %d ok=%v", idx, ok)
	}
	if idx, ok := s.Next(); !ok || idx != 8 {
		t.Errorf("expected second next to land on 8, got %d ok=%v", idx, ok)
	}

	s.Idx = 2
	if idx, ok := s.Next(); !ok || idx != 3 {
		t.Errorf("expected wrap to first match, got %d ok=%v", idx, ok)
	}
}

func TestPrevWraps(t *testing.T) {
	s := Search{Matches: []int{3, 8, 15}, Idx: 0}

	if idx, ok := s.Prev(); !ok || idx != 15 {
		t.Errorf("expected wrap backward to 15, got %d ok=%v", idx, ok)
	}
	if idx, ok := s.Prev(); !ok || idx != 8 {
		t.Errorf("expected prev to land on 8, got %d ok=%v", idx, ok)
	}
}

func TestStartAndClear(t *testing.T) {
	var s Search

	s.Start()
	if !s.Active {
		t.Error("expected Active true after Start")
	}
	if s.Idx != -1 {
		t.Errorf("expected Idx -1 after Start, got %d", s.Idx)
	}

	s.Query = "test"
	s.Matches = []int{1, 2}
	s.Idx = 0

	s.Clear()
	if s.Active {
		t.Error("expected Active false after Clear")
	}
	if s.Query != "" {
		t.Errorf("expected empty Query after Clear, got %q", s.Query)
	}
	if len(s.Matches) != 0 {
		t.Errorf("expected no Matches after Clear, got %d", len(s.Matches))
	}
	if s.Idx != -1 {
		t.Errorf("expected Idx -1 after Clear, got %d", s.Idx)
	}
}

func TestEndKeepsMatches(t *testing.T) {
	s := Search{Active: true, Query: "test", Matches: []int{1, 5}, Idx: 0}

	s.End()
	if s.Active {
		t.Error("expected Active false after End")
	}
	if s.Query != "test" {
		t.Errorf("expected Query preserved after End, got %q", s.Query)
	}
	if len(s.Matches) != 2 {
		t.Errorf("expected Matches preserved after End, got %d", len(s.Matches))
	}
}
