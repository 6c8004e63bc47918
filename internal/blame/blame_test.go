package blame

import (
	"testing"
	"time"

	"github.com/h0rv/stepdiff/internal/session"
)

type fakeBackend struct {
	lines []session.AuthorLine
}

func (f fakeBackend) IsRepo(string) bool                          { return true }
func (f fakeBackend) RepoRoot(string) (string, error)             { return "/repo", nil }
func (f fakeBackend) CurrentBranch(string) (string, error)        { return "main", nil }
func (f fakeBackend) UncommittedChanges(string) ([]session.ChangedFile, error) {
	return nil, nil
}
func (f fakeBackend) StagedChanges(string) ([]session.ChangedFile, error) { return nil, nil }
func (f fakeBackend) ChangesBetween(string, string, string) ([]session.ChangedFile, error) {
	return nil, nil
}
func (f fakeBackend) ChangesBetweenIndex(string, string, bool) ([]session.ChangedFile, error) {
	return nil, nil
}
func (f fakeBackend) FileAtCommitBytes(string, string, string) ([]byte, error) { return nil, nil }
func (f fakeBackend) StagedContentBytes(string, string) ([]byte, error)        { return nil, nil }
func (f fakeBackend) HeadContentBytes(string, string) ([]byte, error)          { return nil, nil }
func (f fakeBackend) BlameRange(root, path string, start, end int, source session.BlameSource) ([]session.AuthorLine, error) {
	return f.lines, nil
}

func TestWorkerSubmitAndDrain(t *testing.T) {
	backend := fakeBackend{lines: []session.AuthorLine{
		{Line: 1, Author: "a", Commit: "abc"},
		{Line: 2, Author: "b", Commit: "def"},
	}}
	w := NewWorker(backend, "/repo", 4)
	defer w.Stop()

	src := session.BlameSource{Kind: session.Worktree}
	w.Submit(Request{Path: "f.go", Start: 1, End: 2, Source: src})

	cache := NewCache()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		cache.Drain(w)
		if _, ok := cache.Lookup("f.go", 1, src); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	line, ok := cache.Lookup("f.go", 1, src)
	if !ok || line.Author != "a" {
		t.Fatalf("expected cached author 'a' for line 1, got %+v ok=%v", line, ok)
	}
	if _, ok := cache.Lookup("f.go", 2, src); !ok {
		t.Fatal("expected line 2 to be cached")
	}
}

func TestCacheEvictsOverflow(t *testing.T) {
	cache := NewCache()
	src := session.BlameSource{Kind: session.Worktree}
	for i := 0; i < maxCacheEntries+10; i++ {
		cache.entries[Key{Path: "f.go", Line: i, Source: src}] = session.AuthorLine{Line: i}
		cache.order = append(cache.order, Key{Path: "f.go", Line: i, Source: src})
	}
	cache.evictOverflow()
	if len(cache.order) != maxCacheEntries {
		t.Fatalf("expected order trimmed to %d, got %d", maxCacheEntries, len(cache.order))
	}
	if _, ok := cache.Lookup("f.go", 0, src); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
}

func TestStopIsSafe(t *testing.T) {
	w := NewWorker(fakeBackend{}, "/repo", 1)
	w.Stop()
}
