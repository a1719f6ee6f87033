package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of comparing a source/target document pair. Passed
// is true iff Errors is empty; warnings never block.
type Result struct {
	Passed       bool
	Errors       []string
	Warnings     []string
	SourceLocale string
	TargetLocale string
}

var pathLocale = regexp.MustCompile(`/([a-z]{2})/`)

// DetectLocale returns the first two-letter locale segment in a file path,
// or "" when none is present.
func DetectLocale(path string) string {
	m := pathLocale.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	return m[1]
}

// Compare checks that the target document preserves the structural skeleton
// of the source. Locale codes may be empty; the link localization checks
// only run when at least one is known.
func Compare(source, target, sourceLocale, targetLocale string) Result {
	res := Result{
		SourceLocale: sourceLocale,
		TargetLocale: targetLocale,
	}

	src := Extract(source)
	tgt := Extract(target)

	compareHeadings(src, tgt, &res)
	compareCodeBlocks(src, tgt, &res)
	compareLinks(src, tgt, &res)
	compareFrontmatter(src, tgt, &res)
	compareListItems(src, tgt, &res)

	res.Passed = len(res.Errors) == 0
	return res
}

func compareHeadings(src, tgt Fingerprint, res *Result) {
	if len(src.Headings) != len(tgt.Headings) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"heading count mismatch: source has %d, target has %d",
			len(src.Headings), len(tgt.Headings)))
	}
}

// Code content must survive translation byte for byte modulo surrounding
// whitespace. This is the strictest rule in the comparator.
func compareCodeBlocks(src, tgt Fingerprint, res *Result) {
	if len(src.CodeBlocks) != len(tgt.CodeBlocks) {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"code block count mismatch: source has %d, target has %d",
			len(src.CodeBlocks), len(tgt.CodeBlocks)))
		return
	}
	for i := range src.CodeBlocks {
		s, t := src.CodeBlocks[i], tgt.CodeBlocks[i]
		if s.Language != t.Language {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"code block %d language mismatch: %q vs %q", i+1, s.Language, t.Language))
		}
		if strings.TrimSpace(s.Body) != strings.TrimSpace(t.Body) {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"code block %d content was modified; code must not be translated", i+1))
		}
	}
}

func compareLinks(src, tgt Fingerprint, res *Result) {
	if len(src.Links) != len(tgt.Links) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"link count differs: source has %d, target has %d",
			len(src.Links), len(tgt.Links)))
	}
	if res.SourceLocale == "" && res.TargetLocale == "" {
		return
	}
	checkLinkLocalization(src.Links, tgt.Links, res)
}

var localePrefix = regexp.MustCompile(`^/[a-z]{2}(/|$)`)

func isExternal(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func isInternal(url string) bool {
	return strings.HasPrefix(url, "/") && !isExternal(url)
}

func checkLinkLocalization(srcLinks, tgtLinks []Link, res *Result) {
	srcURLs := make(map[string]bool, len(srcLinks))
	for _, l := range srcLinks {
		srcURLs[l.URL] = true
	}
	tgtURLs := make(map[string]bool, len(tgtLinks))
	for _, l := range tgtLinks {
		tgtURLs[l.URL] = true
	}

	for _, l := range tgtLinks {
		switch {
		case isInternal(l.URL):
			if res.SourceLocale != "" && strings.HasPrefix(l.URL, "/"+res.SourceLocale+"/") {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"link %q still uses source locale /%s/", l.URL, res.SourceLocale))
			} else if !localePrefix.MatchString(l.URL) {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"link %q is missing a locale prefix", l.URL))
			}
		case isExternal(l.URL):
			if !srcURLs[l.URL] {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"external link %q has no counterpart in the source document", l.URL))
			}
		}
	}

	// Every source internal link should have its localized counterpart in
	// the target.
	if res.TargetLocale == "" {
		return
	}
	for _, l := range srcLinks {
		if !isInternal(l.URL) {
			continue
		}
		expected := localizeURL(l.URL, res.SourceLocale, res.TargetLocale)
		if !tgtURLs[expected] {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"no target link matches %q (localized from %q)", expected, l.URL))
		}
	}
}

// localizeURL computes the expected target-side URL for a source internal
// link: swap a literal source-locale prefix for the target one, prepend the
// target locale when the URL has no locale prefix at all, and leave any
// other locale-prefixed URL unchanged.
func localizeURL(url, sourceLocale, targetLocale string) string {
	if sourceLocale != "" && strings.HasPrefix(url, "/"+sourceLocale+"/") {
		return "/" + targetLocale + strings.TrimPrefix(url, "/"+sourceLocale)
	}
	if !localePrefix.MatchString(url) {
		return "/" + targetLocale + url
	}
	return url
}

// Losing a frontmatter key silently breaks downstream tooling, so missing
// keys are errors while extra keys are only warnings.
func compareFrontmatter(src, tgt Fingerprint, res *Result) {
	tgtKeys := make(map[string]bool, len(tgt.FrontmatterKeys))
	for _, k := range tgt.FrontmatterKeys {
		tgtKeys[k] = true
	}
	srcKeys := make(map[string]bool, len(src.FrontmatterKeys))
	for _, k := range src.FrontmatterKeys {
		srcKeys[k] = true
	}

	var missing []string
	for _, k := range src.FrontmatterKeys {
		if !tgtKeys[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"frontmatter keys missing from target: %s", strings.Join(missing, ", ")))
	}

	var extra []string
	for _, k := range tgt.FrontmatterKeys {
		if !srcKeys[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"frontmatter keys not present in source: %s", strings.Join(extra, ", ")))
	}
}

func compareListItems(src, tgt Fingerprint, res *Result) {
	diff := len(src.ListItems) - len(tgt.ListItems)
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"list item count differs by %d: source has %d, target has %d",
			diff, len(src.ListItems), len(tgt.ListItems)))
	}
}
