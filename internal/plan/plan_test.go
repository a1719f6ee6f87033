package plan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsEmptyPlan(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "plan.yaml"))
	require.NoError(t, err)
	assert.Empty(t, f.Entries)
	assert.Equal(t, 1, f.Version)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	f := New()
	f.Entries["guide.md"] = Entry{
		Status:       StatusDone,
		SourceHash:   "abc123",
		TranslatedAt: "2026-08-01T00:00:00Z",
		Notes:        "reviewed",
	}
	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.Entries["guide.md"], loaded.Entries["guide.md"])
	assert.NotEmpty(t, loaded.UpdatedAt)
}

func TestUpdate_PreservesUntouchedFields(t *testing.T) {
	f := New()
	f.Entries["guide.md"] = Entry{
		Status:     StatusDone,
		SourceHash: "abc123",
		Notes:      "keep me",
	}

	f.Update("guide.md", func(e *Entry) {
		e.Status = StatusNeedsUpdate
	})

	got := f.Entries["guide.md"]
	assert.Equal(t, StatusNeedsUpdate, got.Status)
	assert.Equal(t, "abc123", got.SourceHash)
	assert.Equal(t, "keep me", got.Notes)
}

func TestUpdate_DoesNotDropOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	f := New()
	f.Entries["a.md"] = Entry{Status: StatusDone}
	f.Entries["b.md"] = Entry{Status: StatusPending}
	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	loaded.Update("b.md", func(e *Entry) { e.Status = StatusDone })
	require.NoError(t, loaded.Save(path))

	final, err := Load(path)
	require.NoError(t, err)
	require.Len(t, final.Entries, 2)
	assert.Equal(t, StatusDone, final.Entries["a.md"].Status)
	assert.Equal(t, StatusDone, final.Entries["b.md"].Status)
}

func TestUpdate_CreatesMissingEntry(t *testing.T) {
	f := New()
	f.Update("new.md", func(e *Entry) { e.Status = StatusPending })
	assert.Equal(t, StatusPending, f.Entries["new.md"].Status)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusDeleted.Valid())
	assert.False(t, Status("bogus").Valid())
}

func TestPaths_Sorted(t *testing.T) {
	f := New()
	f.Entries["b.md"] = Entry{}
	f.Entries["a.md"] = Entry{}
	assert.Equal(t, []string{"a.md", "b.md"}, f.Paths())
}
