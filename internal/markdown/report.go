package markdown

import "strings"

// ChangeReport classifies section keys between two revisions of a document.
// The four lists partition the union of old and new keys: Added and Removed
// hold the keys unique to one side, Modified and Unchanged split the shared
// keys by trimmed-content equality.
type ChangeReport struct {
	Added     []string
	Removed   []string
	Modified  []string
	Unchanged []string
}

// CompareSections builds a ChangeReport from the section sets of an old and
// a new revision. Sections are keyed by Section.Key; duplicate headings at
// the same level collapse (last write wins), a documented limitation.
func CompareSections(old, updated []Section) ChangeReport {
	oldByKey := indexByKey(old)
	newByKey := indexByKey(updated)

	var report ChangeReport
	for _, s := range updated {
		key := s.Key()
		prev, ok := oldByKey[key]
		if !ok {
			report.Added = appendOnce(report.Added, key)
			continue
		}
		if strings.TrimSpace(prev.Content) == strings.TrimSpace(newByKey[key].Content) {
			report.Unchanged = appendOnce(report.Unchanged, key)
		} else {
			report.Modified = appendOnce(report.Modified, key)
		}
	}
	for _, s := range old {
		if _, ok := newByKey[s.Key()]; !ok {
			report.Removed = appendOnce(report.Removed, s.Key())
		}
	}
	return report
}

func indexByKey(sections []Section) map[string]Section {
	m := make(map[string]Section, len(sections))
	for _, s := range sections {
		m[s.Key()] = s
	}
	return m
}

func appendOnce(list []string, key string) []string {
	for _, k := range list {
		if k == key {
			return list
		}
	}
	return append(list, key)
}
