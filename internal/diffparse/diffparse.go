// Package diffparse turns unified-diff text into classified hunks.
package diffparse

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Operation labels the kind of edit a hunk represents.
type Operation string

const (
	OpAdd    Operation = "add"
	OpDelete Operation = "delete"
	OpModify Operation = "modify"
	OpFormat Operation = "format"
)

// Hunk is one contiguous change region from a unified diff.
// Deleted, Added and Context hold bulk line lists for the whole hunk;
// per-line interleaving is intentionally not tracked.
type Hunk struct {
	Header   string
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Deleted  []string
	Added    []string
	Context  []string

	Operation   Operation
	Description string
}

// LineRange returns the inclusive new-file line span of the hunk.
func (h *Hunk) LineRange() (start, end int) {
	return h.NewStart, h.NewStart + h.NewCount - 1
}

// Regex for hunk headers: @@ -oldStart[,oldLen] +newStart[,newLen] @@
var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse scans unified-diff text and returns its hunks in order, each already
// classified. Lines outside recognized hunks are ignored, so malformed input
// degrades to fewer hunks rather than an error. An empty diff yields nil.
func Parse(diff string) []Hunk {
	var hunks []Hunk
	var current *Hunk

	flush := func() {
		if current != nil {
			Classify(current)
			hunks = append(hunks, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(diff))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			flush()
			current = &Hunk{
				Header:   line,
				OldStart: atoiDefault(m[1], 0),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 0),
				NewCount: atoiDefault(m[4], 1),
			}
			continue
		}

		if current == nil {
			continue
		}

		// "\ No newline at end of file" belongs to the hunk but carries no content.
		if strings.HasPrefix(line, `\`) {
			continue
		}

		// Diff metadata closes the hunk without starting a new one.
		if isMetadataLine(line) {
			flush()
			continue
		}

		switch {
		case strings.HasPrefix(line, "-"):
			current.Deleted = append(current.Deleted, line[1:])
		case strings.HasPrefix(line, "+"):
			current.Added = append(current.Added, line[1:])
		case strings.HasPrefix(line, " "):
			current.Context = append(current.Context, line[1:])
		case line == "":
			// Some tools emit empty context lines without the leading space.
			current.Context = append(current.Context, "")
		default:
			flush()
		}
	}

	flush()
	return hunks
}

func isMetadataLine(line string) bool {
	for _, prefix := range []string{"diff ", "index ", "--- ", "+++ ", "@@"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return line == "---" || line == "+++"
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Classify assigns the hunk's Operation and Description. It is total: every
// hunk receives exactly one operation.
func Classify(h *Hunk) {
	switch {
	case len(h.Deleted) == 0 && len(h.Added) > 0:
		h.Operation = OpAdd
		h.Description = fmt.Sprintf("added %d line(s)", len(h.Added))
	case len(h.Added) == 0 && len(h.Deleted) > 0:
		h.Operation = OpDelete
		h.Description = fmt.Sprintf("deleted %d line(s)", len(h.Deleted))
	case isWhitespaceOnly(h):
		h.Operation = OpFormat
		h.Description = fmt.Sprintf("reformatted %d line(s)", len(h.Added))
	default:
		h.Operation = OpModify
		h.Description = fmt.Sprintf("replaced %d line(s) with %d line(s)", len(h.Deleted), len(h.Added))
	}
}

// isWhitespaceOnly reports whether the hunk changes nothing but leading or
// trailing whitespace, line for line.
func isWhitespaceOnly(h *Hunk) bool {
	if len(h.Deleted) != len(h.Added) {
		return false
	}
	for i := range h.Deleted {
		if strings.TrimSpace(h.Deleted[i]) != strings.TrimSpace(h.Added[i]) {
			return false
		}
	}
	return true
}
