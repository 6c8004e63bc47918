package session

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/h0rv/stepdiff/internal/diffmodel"
	"github.com/h0rv/stepdiff/internal/navigator"
)

// fileSlot holds one file's old/new bytes and a lazily-built navigator.
type fileSlot struct {
	entry FileEntry
	old   []byte
	new   []byte
	nav   *navigator.Navigator
}

// MultiFileSession owns the set of files being stepped through, and the
// RepoBackend refresh protocol against a git working tree.
type MultiFileSession struct {
	backend  RepoBackend
	root     string
	mode     GitDiffMode
	slots    []fileSlot
	selected int
}

// FromFilePair builds a single-file session from two explicit byte buffers,
// bypassing git entirely (the plain two-file invocation).
func FromFilePair(oldPath, newPath string, oldBytes, newBytes []byte) *MultiFileSession {
	s := &MultiFileSession{selected: 0}
	s.slots = []fileSlot{{
		entry: FileEntry{
			DisplayName: newPath,
			Path:        newPath,
			Status:      Modified,
			Binary:      isBinary(oldBytes) || isBinary(newBytes),
		},
		old: oldBytes,
		new: newBytes,
	}}
	return s
}

func newFromChanges(backend RepoBackend, root string, mode GitDiffMode, changes []ChangedFile, fetch func(ChangedFile) (old, new []byte, err error)) (*MultiFileSession, error) {
	s := &MultiFileSession{backend: backend, root: root, mode: mode}
	for _, cf := range changes {
		old, newB, err := fetch(cf)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", cf.Path, err)
		}
		entry := FileEntry{
			DisplayName: cf.Path,
			Path:        cf.Path,
			OldPath:     cf.OldPath,
			Status:      cf.Status,
			Binary:      isBinary(old) || isBinary(newB),
		}
		if !entry.Binary {
			ins, del := countChanges(old, newB)
			entry.Insertions, entry.Deletions = ins, del
		}
		s.slots = append(s.slots, fileSlot{entry: entry, old: old, new: newB})
	}
	return s, nil
}

// FromGitChanges builds a session over the uncommitted working-tree diff.
func FromGitChanges(backend RepoBackend, root string) (*MultiFileSession, error) {
	changes, err := backend.UncommittedChanges(root)
	if err != nil {
		return nil, err
	}
	return newFromChanges(backend, root, GitDiffMode{Kind: Uncommitted}, changes, func(cf ChangedFile) ([]byte, []byte, error) {
		return fetchUncommitted(backend, root, cf)
	})
}

// FromGitStaged builds a session over the staged (index vs HEAD) diff.
func FromGitStaged(backend RepoBackend, root string) (*MultiFileSession, error) {
	changes, err := backend.StagedChanges(root)
	if err != nil {
		return nil, err
	}
	return newFromChanges(backend, root, GitDiffMode{Kind: Staged}, changes, func(cf ChangedFile) ([]byte, []byte, error) {
		return fetchStaged(backend, root, cf)
	})
}

// FromGitRange builds a session over the diff between two commit-ish
// revisions.
func FromGitRange(backend RepoBackend, root, from, to string) (*MultiFileSession, error) {
	changes, err := backend.ChangesBetween(root, from, to)
	if err != nil {
		return nil, err
	}
	mode := GitDiffMode{Kind: Range, From: from, To: to}
	return newFromChanges(backend, root, mode, changes, func(cf ChangedFile) ([]byte, []byte, error) {
		return fetchRange(backend, root, from, to, cf)
	})
}

// FromGitIndexRange builds a session between a revision and the index
// (optionally reversed).
func FromGitIndexRange(backend RepoBackend, root, from string, reverse bool) (*MultiFileSession, error) {
	changes, err := backend.ChangesBetweenIndex(root, from, reverse)
	if err != nil {
		return nil, err
	}
	mode := GitDiffMode{Kind: IndexRange, From: from, ToIndex: !reverse}
	return newFromChanges(backend, root, mode, changes, func(cf ChangedFile) ([]byte, []byte, error) {
		return fetchIndexRange(backend, root, from, reverse, cf)
	})
}

func fetchUncommitted(backend RepoBackend, root string, cf ChangedFile) (old, newB []byte, err error) {
	if cf.Status != Untracked && cf.Status != Added {
		old, err = backend.HeadContentBytes(root, cf.Path)
		if err != nil {
			old = nil
		}
	}
	if cf.Status != Deleted {
		newB, err = readWorktreeFile(root, cf.Path)
		if err != nil {
			return nil, nil, err
		}
	}
	return old, newB, nil
}

func fetchStaged(backend RepoBackend, root string, cf ChangedFile) (old, newB []byte, err error) {
	if cf.Status != Added {
		old, _ = backend.HeadContentBytes(root, cf.Path)
	}
	if cf.Status != Deleted {
		newB, err = backend.StagedContentBytes(root, cf.Path)
		if err != nil {
			return nil, nil, err
		}
	}
	return old, newB, nil
}

func fetchRange(backend RepoBackend, root, from, to string, cf ChangedFile) (old, newB []byte, err error) {
	if cf.Status != Added {
		old, _ = backend.FileAtCommitBytes(root, from, firstNonEmpty(cf.OldPath, cf.Path))
	}
	if cf.Status != Deleted {
		newB, err = backend.FileAtCommitBytes(root, to, cf.Path)
		if err != nil {
			return nil, nil, err
		}
	}
	return old, newB, nil
}

func fetchIndexRange(backend RepoBackend, root, from string, reverse bool, cf ChangedFile) (old, newB []byte, err error) {
	a, err := backend.FileAtCommitBytes(root, from, firstNonEmpty(cf.OldPath, cf.Path))
	if err != nil {
		a = nil
	}
	b, err := backend.StagedContentBytes(root, cf.Path)
	if err != nil {
		b = nil
	}
	if reverse {
		return b, a, nil
	}
	return a, b, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// SelectedIndex returns the currently selected file index.
func (s *MultiFileSession) SelectedIndex() int { return s.selected }

// FileCount returns the number of files in the session.
func (s *MultiFileSession) FileCount() int { return len(s.slots) }

// IsMultiFile reports whether the session spans more than one file.
func (s *MultiFileSession) IsMultiFile() bool { return len(s.slots) > 1 }

// CurrentFile returns the FileEntry for the selected file.
func (s *MultiFileSession) CurrentFile() (FileEntry, bool) {
	if s.selected < 0 || s.selected >= len(s.slots) {
		return FileEntry{}, false
	}
	return s.slots[s.selected].entry, true
}

// CurrentFileIsBinary reports whether the selected file is binary.
func (s *MultiFileSession) CurrentFileIsBinary() bool {
	e, ok := s.CurrentFile()
	return ok && e.Binary
}

// SelectFile moves the selection to the given index, clamping to bounds.
func (s *MultiFileSession) SelectFile(i int) {
	if len(s.slots) == 0 {
		s.selected = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.slots) {
		i = len(s.slots) - 1
	}
	s.selected = i
}

// NextFile advances the selection, returning false at the last file.
func (s *MultiFileSession) NextFile() bool {
	if s.selected+1 >= len(s.slots) {
		return false
	}
	s.selected++
	return true
}

// PrevFile retreats the selection, returning false at the first file.
func (s *MultiFileSession) PrevFile() bool {
	if s.selected <= 0 {
		return false
	}
	s.selected--
	return true
}

// RepoRoot returns the working-tree root this session was built against.
func (s *MultiFileSession) RepoRoot() string { return s.root }

// IsGitMode reports whether this session was built from a RepoBackend.
func (s *MultiFileSession) IsGitMode() bool { return s.backend != nil }

// GitRangeDisplay renders a short label for the active GitDiffMode.
func (s *MultiFileSession) GitRangeDisplay() string {
	switch s.mode.Kind {
	case Uncommitted:
		return "uncommitted"
	case Staged:
		return "staged"
	case Range:
		return fmt.Sprintf("%s..%s", s.mode.From, s.mode.To)
	case IndexRange:
		return fmt.Sprintf("%s..INDEX", s.mode.From)
	default:
		return ""
	}
}

// TotalStats sums insertions/deletions across every non-binary file.
func (s *MultiFileSession) TotalStats() (insertions, deletions uint32) {
	for _, sl := range s.slots {
		insertions += sl.entry.Insertions
		deletions += sl.entry.Deletions
	}
	return insertions, deletions
}

// CurrentNavigator lazily builds and caches the Navigator for the selected
// file, the way oyo-core's multi.rs defers DiffEngine construction until a
// file is actually viewed.
func (s *MultiFileSession) CurrentNavigator() (*navigator.Navigator, bool) {
	if s.selected < 0 || s.selected >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[s.selected]
	if slot.entry.Binary {
		return nil, false
	}
	if slot.nav == nil {
		model := diffmodel.Build(string(slot.old), string(slot.new))
		slot.nav = navigator.New(model)
	}
	return slot.nav, true
}

// CurrentOldIsEmpty reports whether the selected file's old side is empty
// (new-file case).
func (s *MultiFileSession) CurrentOldIsEmpty() bool {
	if s.selected < 0 || s.selected >= len(s.slots) {
		return true
	}
	return len(s.slots[s.selected].old) == 0
}

// CurrentNewIsEmpty reports whether the selected file's new side is empty
// (deleted-file case).
func (s *MultiFileSession) CurrentNewIsEmpty() bool {
	if s.selected < 0 || s.selected >= len(s.slots) {
		return true
	}
	return len(s.slots[s.selected].new) == 0
}

// BlameSources returns the (old, new) blame source pair appropriate to the
// session's GitDiffMode: Uncommitted blames the worktree on new and HEAD
// on old; Staged blames the index on new and HEAD on old; Range blames the
// two named commits; IndexRange blames the index against its named
// revision, oriented by which side of the diff the index is on.
func (s *MultiFileSession) BlameSources() (old, new BlameSource) {
	switch s.mode.Kind {
	case Uncommitted:
		return BlameSource{Kind: Commit, Commit: "HEAD"}, BlameSource{Kind: Worktree}
	case Staged:
		return BlameSource{Kind: Commit, Commit: "HEAD"}, BlameSource{Kind: Index}
	case Range:
		return BlameSource{Kind: Commit, Commit: s.mode.From}, BlameSource{Kind: Commit, Commit: s.mode.To}
	case IndexRange:
		if s.mode.ToIndex {
			return BlameSource{Kind: Commit, Commit: s.mode.From}, BlameSource{Kind: Index}
		}
		return BlameSource{Kind: Index}, BlameSource{Kind: Commit, Commit: s.mode.From}
	default:
		return BlameSource{Kind: Worktree}, BlameSource{Kind: Worktree}
	}
}

// RefreshAllFromGit re-fetches every file's changed-file listing and bytes
// from the backend, rebuilding the slot list and invalidating every cached
// Navigator. The selection index clamps into the new file count.
func (s *MultiFileSession) RefreshAllFromGit() error {
	if s.backend == nil {
		return fmt.Errorf("session is not git-backed")
	}
	var fresh *MultiFileSession
	var err error
	switch s.mode.Kind {
	case Uncommitted:
		fresh, err = FromGitChanges(s.backend, s.root)
	case Staged:
		fresh, err = FromGitStaged(s.backend, s.root)
	case Range:
		fresh, err = FromGitRange(s.backend, s.root, s.mode.From, s.mode.To)
	case IndexRange:
		fresh, err = FromGitIndexRange(s.backend, s.root, s.mode.From, !s.mode.ToIndex)
	default:
		return fmt.Errorf("unknown diff mode")
	}
	if err != nil {
		return err
	}
	s.slots = fresh.slots
	if s.selected >= len(s.slots) {
		s.selected = len(s.slots) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	return nil
}

// RefreshCurrentFile re-fetches only the selected file's bytes, leaving
// every other slot (and its cached Navigator) untouched, as a cheap
// single-file reload.
func (s *MultiFileSession) RefreshCurrentFile() error {
	if s.backend == nil {
		return fmt.Errorf("session is not git-backed")
	}
	if s.selected < 0 || s.selected >= len(s.slots) {
		return fmt.Errorf("no file selected")
	}
	slot := &s.slots[s.selected]
	cf := ChangedFile{Path: slot.entry.Path, OldPath: slot.entry.OldPath, Status: slot.entry.Status}
	var old, newB []byte
	var err error
	switch s.mode.Kind {
	case Uncommitted:
		old, newB, err = fetchUncommitted(s.backend, s.root, cf)
	case Staged:
		old, newB, err = fetchStaged(s.backend, s.root, cf)
	case Range:
		old, newB, err = fetchRange(s.backend, s.root, s.mode.From, s.mode.To, cf)
	case IndexRange:
		old, newB, err = fetchIndexRange(s.backend, s.root, s.mode.From, !s.mode.ToIndex, cf)
	default:
		return fmt.Errorf("unknown diff mode")
	}
	if err != nil {
		return err
	}
	slot.old, slot.new = old, newB
	slot.entry.Binary = isBinary(old) || isBinary(newB)
	if !slot.entry.Binary {
		slot.entry.Insertions, slot.entry.Deletions = countChanges(old, newB)
	}
	slot.nav = nil
	return nil
}

// RefreshAllFromGitTracking behaves like RefreshAllFromGit but additionally
// reports the path of the first file whose new-side content differs from
// what it held before the refresh, so follow mode can jump the viewer to the
// freshly changed file/hunk instead of leaving the step position untouched.
func (s *MultiFileSession) RefreshAllFromGitTracking() (changedPath string, err error) {
	prevNew := make(map[string]string, len(s.slots))
	for _, sl := range s.slots {
		prevNew[sl.entry.Path] = string(sl.new)
	}
	if err := s.RefreshAllFromGit(); err != nil {
		return "", err
	}
	for _, sl := range s.slots {
		old, seen := prevNew[sl.entry.Path]
		if !seen || old != string(sl.new) {
			return sl.entry.Path, nil
		}
	}
	return "", nil
}

// PathIndex returns the slot index of the given file path, or -1 if absent.
func (s *MultiFileSession) PathIndex(path string) int {
	for i, sl := range s.slots {
		if sl.entry.Path == path {
			return i
		}
	}
	return -1
}

func isBinary(b []byte) bool {
	if bytes.IndexByte(b, 0) >= 0 {
		return true
	}
	return len(b) > 0 && !utf8.Valid(b)
}

func countChanges(old, newB []byte) (insertions, deletions uint32) {
	model := diffmodel.Build(string(old), string(newB))
	return model.Insertions, model.Deletions
}
