// Package markdown splits documents into heading-delimited sections and
// compares section sets between two revisions of the same document.
package markdown

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// IntroTitle names the implicit level-0 section holding content that appears
// before the first heading.
const IntroTitle = "(untitled)"

// Section is the span of a document from one heading (inclusive) to the line
// before the next heading of any level. Line numbers are 1-based. Index is
// the document-order position, which keeps duplicate headings distinguishable.
type Section struct {
	Index     int
	Title     string
	Level     int
	StartLine int
	EndLine   int
	Content   string
}

// Key returns the composite mapping key for the section. Duplicate headings
// at the same level collapse under this key (last write wins); callers that
// need uniqueness must use Index.
func (s Section) Key() string {
	return fmt.Sprintf("%d#%s", s.Level, s.Title)
}

// Heading pattern: 1-6 leading '#', at least one whitespace, then text.
// Trailing '#' decoration is deliberately left in the title; downstream key
// matching depends on the exact heading string.
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// Split segments document text into sections covering every line exactly
// once, in document order. A document with no headings yields a single
// intro section. A document whose first line is a heading yields no intro.
func Split(content string) []Section {
	var sections []Section
	current := Section{Title: IntroTitle, Level: 0, StartLine: 1}
	var buf []string
	lineNo := 0

	close := func(endLine int) {
		if len(buf) == 0 {
			return
		}
		current.EndLine = endLine
		current.Content = strings.Join(buf, "\n")
		current.Index = len(sections)
		sections = append(sections, current)
		buf = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			close(lineNo - 1)
			current = Section{
				Title:     m[2],
				Level:     len(m[1]),
				StartLine: lineNo,
			}
		}
		buf = append(buf, line)
	}
	close(lineNo)

	// Empty document still has the single (empty) intro span.
	if len(sections) == 0 {
		current.EndLine = 0
		sections = append(sections, current)
	}
	return sections
}

// ByLine returns the first section whose line range contains the given
// 1-based line, or nil if none does.
func ByLine(sections []Section, line int) *Section {
	for i := range sections {
		if line >= sections[i].StartLine && line <= sections[i].EndLine {
			return &sections[i]
		}
	}
	return nil
}
