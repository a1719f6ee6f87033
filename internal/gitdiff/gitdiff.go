// Package gitdiff obtains unified diffs from the version-control command
// line. Every downstream computation depends on this output, so failures
// here are always surfaced, never recovered silently.
package gitdiff

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Diff returns the unified diff of a working-tree file against the given
// reference (for example "HEAD"). An empty result means the file has no
// changes.
func Diff(dir, ref, path string) (string, error) {
	cmd := exec.Command("git", "diff", ref, "--", path)
	if dir != "" {
		cmd.Dir = dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git diff %s -- %s: %s", ref, path, msg)
	}
	return string(out), nil
}

// Show returns the file contents at the given reference, for section-level
// comparison against the working tree.
func Show(dir, ref, path string) (string, error) {
	cmd := exec.Command("git", "show", ref+":"+path)
	if dir != "" {
		cmd.Dir = dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git show %s:%s: %s", ref, path, msg)
	}
	return string(out), nil
}

// IsTracked reports whether git knows the file at all. Untracked files have
// no reference version to diff against.
func IsTracked(dir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--error-unmatch", "--", path)
	if dir != "" {
		cmd.Dir = dir
	}
	return cmd.Run() == nil
}
