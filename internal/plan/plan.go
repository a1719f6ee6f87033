// Package plan persists per-file translation status in a YAML plan file.
// The plan is the only mutable state the toolkit keeps between invocations,
// so updates merge into the loaded file and writes are atomic: a partial
// update must never drop entries or fields it was not given.
package plan

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/renameio"
	"gopkg.in/yaml.v3"
)

// Status is the translation state of one file.
type Status string

const (
	StatusPending     Status = "pending"
	StatusNeedsUpdate Status = "needs_update"
	StatusDone        Status = "done"
	StatusDeleted     Status = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusNeedsUpdate, StatusDone, StatusDeleted:
		return true
	}
	return false
}

// Entry is the recorded state of one source file, keyed by its path
// relative to the source directory.
type Entry struct {
	Status       Status `yaml:"status"`
	SourceHash   string `yaml:"source_hash,omitempty"`
	TranslatedAt string `yaml:"translated_at,omitempty"`
	Notes        string `yaml:"notes,omitempty"`
}

// File is the whole plan document.
type File struct {
	Version   int              `yaml:"version"`
	UpdatedAt string           `yaml:"updated_at,omitempty"`
	Entries   map[string]Entry `yaml:"entries"`
}

const currentVersion = 1

// New returns an empty plan.
func New() *File {
	return &File{Version: currentVersion, Entries: map[string]Entry{}}
}

// Load reads the plan at path. A missing file is not an error; it yields an
// empty plan so first runs need no setup step.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	f := New()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if f.Entries == nil {
		f.Entries = map[string]Entry{}
	}
	return f, nil
}

// Save writes the plan atomically so a crash mid-write cannot lose the
// previous plan contents.
func (f *File) Save(path string) error {
	f.Version = currentVersion
	f.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan %s: %w", path, err)
	}
	return nil
}

// Update applies a mutation to one entry, creating it when absent. Fields
// the mutation does not touch keep their loaded values.
func (f *File) Update(path string, fn func(*Entry)) {
	entry := f.Entries[path]
	fn(&entry)
	f.Entries[path] = entry
}

// Paths returns the entry keys in sorted order for stable listings.
func (f *File) Paths() []string {
	paths := make([]string, 0, len(f.Entries))
	for p := range f.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
