package merge

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// GitFileMerger shells out to `git merge-file -p` over temporary snapshots
// of base/ours/theirs. The scratch directory is removed on every exit path
// and cleanup errors are swallowed; any setup or invocation failure
// degrades to an unresolved outcome.
type GitFileMerger struct {
	// GitPath overrides the git executable. Empty means "git" from PATH.
	GitPath string
}

// Merge implements Merger.
func (m *GitFileMerger) Merge(base, ours, theirs string) Outcome {
	scratch, err := os.MkdirTemp("", "remerge-"+uuid.NewString()[:8]+"-")
	if err != nil {
		return Outcome{Status: StatusUnresolved, Err: err}
	}
	defer func() {
		_ = os.RemoveAll(scratch)
	}()

	snapshots := map[string]string{
		"base":   base,
		"ours":   ours,
		"theirs": theirs,
	}
	for name, content := range snapshots {
		if err := os.WriteFile(filepath.Join(scratch, name), []byte(content), 0600); err != nil {
			return Outcome{Status: StatusUnresolved, Err: err}
		}
	}

	gitPath := m.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	cmd := exec.Command(gitPath, "merge-file", "-p",
		filepath.Join(scratch, "ours"),
		filepath.Join(scratch, "base"),
		filepath.Join(scratch, "theirs"),
	)
	stdout, err := cmd.Output()
	// merge-file exits non-zero when the result contains conflicts; the
	// marker scan below covers that case, so only report err for context.
	content := string(stdout)
	if content == "" || ContainsMarkers(content) {
		return Outcome{Status: StatusUnresolved, Err: err}
	}

	return Outcome{Status: StatusResolved, Content: content}
}
