// Package session implements MultiFileSession: ownership of per-file old/new
// byte buffers, lazy Navigator materialization, and refresh protocols
// against a RepoBackend.
package session

// FileStatus classifies a changed file's relationship between old and new.
type FileStatus int

const (
	Added FileStatus = iota
	Modified
	Deleted
	Renamed
	Untracked
)

// ChangedFile is what a RepoBackend listing call reports per file.
type ChangedFile struct {
	Path    string
	Status  FileStatus
	OldPath string // empty if not renamed
}

// FileEntry is the per-file bookkeeping MultiFileSession exposes to the
// host: display metadata plus binary detection. Binary detection: a side is
// binary iff its bytes contain a 0x00 or fail UTF-8 validation; the entry is
// binary iff either side is.
type FileEntry struct {
	DisplayName string
	Path        string
	OldPath     string
	Status      FileStatus
	Insertions  uint32
	Deletions   uint32
	Binary      bool
}

// GitDiffMode determines how refresh fetches old/new bytes per file and
// what (old, new) blame sources are exposed.
type GitDiffMode struct {
	Kind    GitDiffModeKind
	From    string
	To      string // Range only
	ToIndex bool   // IndexRange only
}

type GitDiffModeKind int

const (
	Uncommitted GitDiffModeKind = iota
	Staged
	Range
	IndexRange
)

// BlameSourceKind identifies which revision of a file an authorship lookup
// targets.
type BlameSourceKind int

const (
	Worktree BlameSourceKind = iota
	Index
	Commit
)

// BlameSource is a declarative label for a blame lookup target.
type BlameSource struct {
	Kind   BlameSourceKind
	Commit string // only set when Kind == Commit
}
