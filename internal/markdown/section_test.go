package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `Intro text before any heading.

# Installation

Step one.

## Linux

apt install.

## Linux

Second Linux section with a duplicate heading.

# Usage

Run the thing.`

func TestSplit_PartitionReproducesDocument(t *testing.T) {
	docs := []string{
		sampleDoc,
		"# Only a heading",
		"no headings at all\njust text",
		"",
		"# A\n## B\n### C",
	}

	for _, doc := range docs {
		sections := Split(doc)
		var parts []string
		for _, s := range sections {
			parts = append(parts, s.Content)
		}
		assert.Equal(t, doc, strings.Join(parts, "\n"))
	}
}

func TestSplit_SectionBoundaries(t *testing.T) {
	sections := Split(sampleDoc)
	require.Len(t, sections, 5)

	intro := sections[0]
	assert.Equal(t, IntroTitle, intro.Title)
	assert.Equal(t, 0, intro.Level)
	assert.Equal(t, 1, intro.StartLine)
	assert.Equal(t, 2, intro.EndLine)

	install := sections[1]
	assert.Equal(t, "Installation", install.Title)
	assert.Equal(t, 1, install.Level)
	assert.Equal(t, 3, install.StartLine)
	assert.Equal(t, 6, install.EndLine)

	// Consecutive sections tile the document with no gap or overlap.
	for i := 1; i < len(sections); i++ {
		assert.Equal(t, sections[i-1].EndLine+1, sections[i].StartLine)
		assert.Equal(t, i, sections[i].Index)
	}
	assert.Equal(t, len(strings.Split(sampleDoc, "\n")), sections[len(sections)-1].EndLine)
}

func TestSplit_NoHeadingsYieldsSingleIntro(t *testing.T) {
	sections := Split("just some prose\nmore prose")
	require.Len(t, sections, 1)
	assert.Equal(t, IntroTitle, sections[0].Title)
	assert.Equal(t, 0, sections[0].Level)
}

func TestSplit_HeadingOnFirstLineSkipsIntro(t *testing.T) {
	sections := Split("# Title\nbody")
	require.Len(t, sections, 1)
	assert.Equal(t, "Title", sections[0].Title)
}

func TestSplit_TrailingDecorationKept(t *testing.T) {
	sections := Split("## Title ##\nbody")
	require.Len(t, sections, 1)
	assert.Equal(t, "Title ##", sections[0].Title)
	assert.Equal(t, 2, sections[0].Level)
}

func TestSplit_SevenHashesIsNotAHeading(t *testing.T) {
	sections := Split("####### not a heading\ntext")
	require.Len(t, sections, 1)
	assert.Equal(t, IntroTitle, sections[0].Title)
}

func TestKey_IncludesLevel(t *testing.T) {
	a := Section{Level: 1, Title: "Linux"}
	b := Section{Level: 2, Title: "Linux"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestByLine(t *testing.T) {
	sections := Split(sampleDoc)

	s := ByLine(sections, 4)
	require.NotNil(t, s)
	assert.Equal(t, "Installation", s.Title)

	assert.Nil(t, ByLine(sections, 999))
}

func TestCompareSections(t *testing.T) {
	old := Split("# A\nalpha\n# B\nbeta\n# C\ngamma")
	updated := Split("# A\nalpha\n# B\nbeta changed\n# D\ndelta")

	report := CompareSections(old, updated)

	want := ChangeReport{
		Added:     []string{"1#D"},
		Removed:   []string{"1#C"},
		Modified:  []string{"1#B"},
		Unchanged: []string{"1#A"},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareSections_TrimmedEqualityIsUnchanged(t *testing.T) {
	old := Split("# A\nalpha")
	updated := Split("# A\nalpha\n")

	report := CompareSections(old, updated)
	assert.Equal(t, []string{"1#A"}, report.Unchanged)
	assert.Empty(t, report.Modified)
}
