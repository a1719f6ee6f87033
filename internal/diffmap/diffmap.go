// Package diffmap attributes diff hunks to the markdown sections they touch,
// so a reviewer can see what kind of change happened where before deciding
// whether a section needs re-translation.
package diffmap

import (
	"i18nkit/internal/diffparse"
	"i18nkit/internal/markdown"
)

// AffectedSection pairs a section of the new document revision with the hunks
// that fall inside it, the distinct operations observed, and the hunk count.
type AffectedSection struct {
	Section    markdown.Section
	Hunks      []diffparse.Hunk
	Operations []diffparse.Operation
	HunkCount  int
}

// Result holds the affected sections in document order. Hunks without a
// usable new-file start position are collected in Invalid instead of failing
// the whole mapping.
type Result struct {
	Affected []AffectedSection
	Invalid  []diffparse.Hunk
}

// Map attributes each hunk to the first section (in document order) whose
// line range contains the hunk's NewStart, with a one-past-end tolerance so
// a hunk starting exactly at a section boundary is absorbed by the section
// it follows. Sections the diff never touches are omitted.
func Map(hunks []diffparse.Hunk, sections []markdown.Section) Result {
	var result Result
	byIndex := make(map[int]*AffectedSection)

	for _, h := range hunks {
		if h.NewStart <= 0 {
			result.Invalid = append(result.Invalid, h)
			continue
		}

		sec := locate(sections, h.NewStart)
		if sec == nil {
			continue
		}

		aff := byIndex[sec.Index]
		if aff == nil {
			aff = &AffectedSection{Section: *sec}
			byIndex[sec.Index] = aff
		}
		aff.Hunks = append(aff.Hunks, h)
		aff.HunkCount++
		aff.Operations = addOperation(aff.Operations, h.Operation)
	}

	for i := range sections {
		if aff, ok := byIndex[sections[i].Index]; ok {
			result.Affected = append(result.Affected, *aff)
		}
	}
	return result
}

// locate returns the first section whose [StartLine, EndLine+1] range
// contains the line.
func locate(sections []markdown.Section, line int) *markdown.Section {
	for i := range sections {
		if line >= sections[i].StartLine && line <= sections[i].EndLine+1 {
			return &sections[i]
		}
	}
	return nil
}

func addOperation(ops []diffparse.Operation, op diffparse.Operation) []diffparse.Operation {
	for _, existing := range ops {
		if existing == op {
			return ops
		}
	}
	return append(ops, op)
}
