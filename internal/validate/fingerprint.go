// Package validate extracts structural fingerprints from markdown documents
// and compares a source/translation pair, producing errors for skeleton
// breakage and warnings for findings a reviewer should eyeball.
package validate

import (
	"bufio"
	"regexp"
	"strings"
)

// Heading is one heading line, with its level and exact text (trailing '#'
// decoration included).
type Heading struct {
	Level int
	Text  string
}

// CodeBlock is one fenced code block. Body holds the raw lines between the
// fences, newline-joined.
type CodeBlock struct {
	Language string
	Body     string
}

// Link is one inline link occurrence.
type Link struct {
	Text string
	URL  string
}

// Fingerprint is the extracted structural skeleton of one document. Every
// list is in document order with duplicates preserved, except
// FrontmatterKeys which is a set.
type Fingerprint struct {
	Headings        []Heading
	CodeBlocks      []CodeBlock
	Links           []Link
	ListItems       []string
	FrontmatterKeys []string
}

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	fenceLine   = regexp.MustCompile("^```([^\\s`]*)")
	inlineLink  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	// Only top-level bullets are counted; indented list items are invisible
	// to the comparator.
	listItemLine = regexp.MustCompile(`^[-*]\s+(.*)$`)
)

// Extract builds the fingerprint of a document. Each element kind is
// extracted independently with no cross-validation between them.
func Extract(content string) Fingerprint {
	var fp Fingerprint
	fp.Links = extractLinks(content)
	fp.FrontmatterKeys = extractFrontmatterKeys(content)

	inFence := false
	var fenceLang string
	var fenceBody []string

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := fenceLine.FindStringSubmatch(line); m != nil {
			if inFence {
				// First closing fence after an opening one ends the block;
				// nesting is not modeled.
				fp.CodeBlocks = append(fp.CodeBlocks, CodeBlock{
					Language: fenceLang,
					Body:     strings.Join(fenceBody, "\n"),
				})
				inFence = false
				fenceBody = nil
			} else {
				inFence = true
				fenceLang = m[1]
			}
			continue
		}
		if inFence {
			fenceBody = append(fenceBody, line)
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			fp.Headings = append(fp.Headings, Heading{Level: len(m[1]), Text: m[2]})
			continue
		}
		if m := listItemLine.FindStringSubmatch(line); m != nil {
			fp.ListItems = append(fp.ListItems, m[1])
		}
	}
	// An unterminated fence is dropped, not counted as a block.

	return fp
}

func extractLinks(content string) []Link {
	var links []Link
	for _, m := range inlineLink.FindAllStringSubmatch(content, -1) {
		links = append(links, Link{Text: m[1], URL: m[2]})
	}
	return links
}

// extractFrontmatterKeys scans a leading "---" delimited block for key lines.
// Values are not parsed; only key presence matters.
func extractFrontmatterKeys(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return nil
	}

	var keys []string
	seen := make(map[string]bool)
	for _, line := range lines[1:] {
		if strings.TrimRight(line, "\r") == "---" {
			return keys
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	// No closing delimiter: not a frontmatter block.
	return nil
}
