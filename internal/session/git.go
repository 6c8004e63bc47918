package session

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// GitBackend shells out to the `git` binary for diffs, blame, and file
// content lookups.
type GitBackend struct{}

func (GitBackend) IsRepo(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	return cmd.Run() == nil
}

func (GitBackend) RepoRoot(path string) (string, error) {
	out, err := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func (GitBackend) CurrentBranch(path string) (string, error) {
	out, err := exec.Command("git", "-C", path, "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func (GitBackend) UncommittedChanges(root string) ([]ChangedFile, error) {
	out, err := exec.Command("git", "-C", root, "status", "--porcelain=v1", "--no-renames").Output()
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return parsePorcelainWorktree(out), nil
}

func (GitBackend) StagedChanges(root string) ([]ChangedFile, error) {
	out, err := exec.Command("git", "-C", root, "diff", "--no-color", "--cached").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return parseGitDiffFileList(out)
}

func (GitBackend) ChangesBetween(root, from, to string) ([]ChangedFile, error) {
	out, err := exec.Command("git", "-C", root, "diff", "--no-color", from, to).Output()
	if err != nil {
		return nil, fmt.Errorf("git diff %s %s: %w", from, to, err)
	}
	return parseGitDiffFileList(out)
}

func (GitBackend) ChangesBetweenIndex(root, from string, reverse bool) ([]ChangedFile, error) {
	args := []string{"-C", root, "diff", "--no-color", "--cached"}
	if reverse {
		args = append(args, "-R")
	}
	args = append(args, from)
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached %s: %w", from, err)
	}
	return parseGitDiffFileList(out)
}

func (GitBackend) FileAtCommitBytes(root, commit, path string) ([]byte, error) {
	out, err := exec.Command("git", "-C", root, "show", commit+":"+path).Output()
	if err != nil {
		return nil, fmt.Errorf("git show %s:%s: %w", commit, path, err)
	}
	return out, nil
}

func (b GitBackend) StagedContentBytes(root, path string) ([]byte, error) {
	out, err := exec.Command("git", "-C", root, "show", ":"+path).Output()
	if err != nil {
		return b.HeadContentBytes(root, path)
	}
	return out, nil
}

func (GitBackend) HeadContentBytes(root, path string) ([]byte, error) {
	out, err := exec.Command("git", "-C", root, "show", "HEAD:"+path).Output()
	if err != nil {
		return nil, fmt.Errorf("git show HEAD:%s: %w", path, err)
	}
	return out, nil
}

func (GitBackend) BlameRange(root, path string, start, end int, source BlameSource) ([]AuthorLine, error) {
	args := []string{"-C", root, "blame", "--porcelain", "-L", fmt.Sprintf("%d,%d", start, end)}
	switch source.Kind {
	case Commit:
		args = append(args, source.Commit)
	case Index:
		// git blame against the index isn't directly supported; no
		// revision is passed, so this blames the worktree file as-is.
	case Worktree:
		// default: blame the worktree file as-is.
	}
	args = append(args, "--", path)
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("git blame %s: %w", path, err)
	}
	return parseBlamePorcelain(out), nil
}

// parseGitDiffFileList runs a unified diff blob through go-gitdiff and reads
// only the per-file header fields (names + new/delete/rename flags) to
// produce the ChangedFile listing.
func parseGitDiffFileList(out []byte) ([]ChangedFile, error) {
	parsed, _, err := gitdiff.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("parse git diff: %w", err)
	}
	files := make([]ChangedFile, 0, len(parsed))
	for _, f := range parsed {
		cf := ChangedFile{Path: f.NewName}
		switch {
		case f.IsNew:
			cf.Status = Added
		case f.IsDelete:
			cf.Status = Deleted
			cf.Path = f.OldName
		case f.IsRename:
			cf.Status = Renamed
			cf.OldPath = f.OldName
		default:
			cf.Status = Modified
		}
		if cf.Path == "" {
			cf.Path = f.OldName
		}
		files = append(files, cf)
	}
	return files, nil
}

func parsePorcelainWorktree(out []byte) []ChangedFile {
	var files []ChangedFile
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 4 {
			continue
		}
		code := strings.TrimSpace(line[:2])
		path := line[3:]
		var status FileStatus
		switch {
		case code == "??":
			status = Untracked
		case strings.Contains(code, "A"):
			status = Added
		case strings.Contains(code, "D"):
			status = Deleted
		default:
			status = Modified
		}
		files = append(files, ChangedFile{Path: path, Status: status})
	}
	return files
}

func parseBlamePorcelain(out []byte) []AuthorLine {
	var lines []AuthorLine
	sc := bufio.NewScanner(bytes.NewReader(out))
	var cur AuthorLine
	for sc.Scan() {
		text := sc.Text()
		switch {
		case strings.HasPrefix(text, "author "):
			cur.Author = strings.TrimPrefix(text, "author ")
		case strings.HasPrefix(text, "author-time "):
			if v, err := strconv.ParseInt(strings.TrimPrefix(text, "author-time "), 10, 64); err == nil {
				cur.AuthorTime = v
			}
		case strings.HasPrefix(text, "summary "):
			cur.Summary = strings.TrimPrefix(text, "summary ")
		case len(text) >= 40 && isHex(text[:40]) && strings.Contains(text, " "):
			fields := strings.Fields(text)
			cur.Commit = fields[0]
			cur.Uncommitted = strings.HasPrefix(cur.Commit, "0000000")
			if len(fields) >= 3 {
				if n, err := strconv.Atoi(fields[2]); err == nil {
					cur.Line = n
				}
			}
		case strings.HasPrefix(text, "\t"):
			lines = append(lines, cur)
			cur = AuthorLine{}
		}
	}
	return lines
}

func isHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}
