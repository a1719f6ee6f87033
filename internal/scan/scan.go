// Package scan walks source and target documentation trees and classifies
// each file's translation status against the recorded plan.
package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"i18nkit/internal/plan"
)

var ignoredDirs = []string{".git", "node_modules", ".i18n", "vendor"}

// FileStatus is the classification of one file after a scan.
type FileStatus struct {
	Path   string
	Status plan.Status
	Hash   string
}

// Hash returns the hex sha256 of file content, the staleness fingerprint
// recorded in the plan.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Walk collects markdown files under dir, keyed by path relative to dir,
// with their content hash. A missing dir yields an empty map so a workspace
// without a target tree yet still scans.
func Walk(dir string) (map[string]string, error) {
	files := make(map[string]string)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range ignoredDirs {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !isMarkdown(d.Name()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = Hash(content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isMarkdown(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown")
}

// Classify derives per-file statuses from the source tree, the target tree
// and the plan's recorded source hashes:
//
//	source present, target absent            -> pending
//	both present, hash differs from recorded -> needs_update
//	both present, hash matches recorded      -> done
//	source absent, target present            -> deleted
func Classify(source, target map[string]string, p *plan.File) []FileStatus {
	var statuses []FileStatus

	for path, hash := range source {
		st := FileStatus{Path: path, Hash: hash}
		if _, ok := target[path]; !ok {
			st.Status = plan.StatusPending
		} else if entry, ok := p.Entries[path]; ok && entry.SourceHash == hash {
			st.Status = plan.StatusDone
		} else {
			st.Status = plan.StatusNeedsUpdate
		}
		statuses = append(statuses, st)
	}

	for path := range target {
		if _, ok := source[path]; !ok {
			statuses = append(statuses, FileStatus{Path: path, Status: plan.StatusDeleted})
		}
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Path < statuses[j].Path })
	return statuses
}

// Apply records the classified statuses back into the plan. Source hashes
// are deliberately left alone: they are written only when a file is marked
// done, so staleness detection keeps comparing against the hash current at
// translation time.
func Apply(p *plan.File, statuses []FileStatus) {
	for _, fs := range statuses {
		status := fs.Status
		p.Update(fs.Path, func(e *plan.Entry) {
			e.Status = status
		})
	}
}
