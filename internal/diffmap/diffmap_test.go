package diffmap

import (
	"testing"

	"i18nkit/internal/diffparse"
	"i18nkit/internal/markdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `# Setup
line two
line three
# Usage
line five
line six
# FAQ
line eight`

func TestMap_AttributesHunksBySection(t *testing.T) {
	sections := markdown.Split(doc)
	hunks := []diffparse.Hunk{
		{NewStart: 2, NewCount: 1, Added: []string{"x"}, Operation: diffparse.OpAdd},
		{NewStart: 5, NewCount: 1, Deleted: []string{"y"}, Added: []string{"z"}, Operation: diffparse.OpModify},
		{NewStart: 6, NewCount: 1, Deleted: []string{"w"}, Operation: diffparse.OpDelete},
	}

	result := Map(hunks, sections)
	require.Len(t, result.Affected, 2)
	assert.Empty(t, result.Invalid)

	setup := result.Affected[0]
	assert.Equal(t, "Setup", setup.Section.Title)
	assert.Equal(t, 1, setup.HunkCount)
	assert.Equal(t, []diffparse.Operation{diffparse.OpAdd}, setup.Operations)

	usage := result.Affected[1]
	assert.Equal(t, "Usage", usage.Section.Title)
	assert.Equal(t, 2, usage.HunkCount)
	assert.Equal(t, []diffparse.Operation{diffparse.OpModify, diffparse.OpDelete}, usage.Operations)
}

func TestMap_OnePastEndTolerance(t *testing.T) {
	sections := markdown.Split(doc)
	// Setup ends at line 3; a hunk starting at line 4 is absorbed by Setup,
	// not Usage, because attribution goes to the first matching section.
	hunks := []diffparse.Hunk{{NewStart: 4, NewCount: 1, Operation: diffparse.OpAdd}}

	result := Map(hunks, sections)
	require.Len(t, result.Affected, 1)
	assert.Equal(t, "Setup", result.Affected[0].Section.Title)
}

func TestMap_SingleAttribution(t *testing.T) {
	sections := markdown.Split(doc)
	hunks := []diffparse.Hunk{{NewStart: 4, NewCount: 3, Operation: diffparse.OpModify}}

	result := Map(hunks, sections)
	total := 0
	for _, aff := range result.Affected {
		total += aff.HunkCount
	}
	assert.Equal(t, 1, total)
}

func TestMap_InvalidHunksSkipped(t *testing.T) {
	sections := markdown.Split(doc)
	hunks := []diffparse.Hunk{
		{NewStart: 0, Operation: diffparse.OpAdd},
		{NewStart: 2, NewCount: 1, Operation: diffparse.OpAdd},
	}

	result := Map(hunks, sections)
	require.Len(t, result.Invalid, 1)
	require.Len(t, result.Affected, 1)
}

func TestMap_UntouchedSectionsOmitted(t *testing.T) {
	sections := markdown.Split(doc)
	result := Map(nil, sections)
	assert.Empty(t, result.Affected)
}

func TestMap_OperationsDeduplicated(t *testing.T) {
	sections := markdown.Split(doc)
	hunks := []diffparse.Hunk{
		{NewStart: 1, NewCount: 1, Operation: diffparse.OpModify},
		{NewStart: 2, NewCount: 1, Operation: diffparse.OpModify},
	}

	result := Map(hunks, sections)
	require.Len(t, result.Affected, 1)
	assert.Equal(t, []diffparse.Operation{diffparse.OpModify}, result.Affected[0].Operations)
	assert.Equal(t, 2, result.Affected[0].HunkCount)
}
