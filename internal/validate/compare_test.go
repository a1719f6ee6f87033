package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceDoc = `---
title: Guide
description: How to install
---

# Guide

See [install](/en/install) for details.

- item 1

` + "```bash\necho \"hi\"\n```\n"

const translatedDoc = `---
title: Guia
description: Como instalar
---

# Guia

Veja [instalar](/zh/install) para detalhes.

- item um

` + "```bash\necho \"hi\"\n```\n"

func TestCompare_IdenticalDocumentsPass(t *testing.T) {
	res := Compare(sourceDoc, sourceDoc, "", "")
	assert.True(t, res.Passed)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestCompare_TranslatedPairPasses(t *testing.T) {
	res := Compare(sourceDoc, translatedDoc, "en", "zh")
	assert.True(t, res.Passed, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestCompare_HeadingCountMismatchIsError(t *testing.T) {
	res := Compare("# One\n## Two\n", "# One\n", "", "")
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "heading count mismatch")
}

func TestCompare_CodeBlockStrictness(t *testing.T) {
	src := "```bash\necho \"hi\"\n```\n"
	tgt := "```bash\necho \"hello\"\n```\n"
	res := Compare(src, tgt, "", "")
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "must not be translated")
}

func TestCompare_CodeBlockWhitespaceTolerated(t *testing.T) {
	src := "```bash\necho hi\n```\n"
	tgt := "```bash\n\necho hi\n\n```\n"
	res := Compare(src, tgt, "", "")
	assert.True(t, res.Passed, "errors: %v", res.Errors)
}

func TestCompare_CodeBlockLanguageMismatchIsError(t *testing.T) {
	res := Compare("```bash\nx\n```\n", "```sh\nx\n```\n", "", "")
	assert.False(t, res.Passed)
	assert.Contains(t, res.Errors[0], "language mismatch")
}

func TestCompare_CodeBlockCountMismatchIsError(t *testing.T) {
	res := Compare("```\nx\n```\n", "", "", "")
	assert.False(t, res.Passed)
	assert.Contains(t, res.Errors[0], "code block count mismatch")
}

func TestCompare_LinkCountMismatchIsWarningOnly(t *testing.T) {
	res := Compare("[a](/x) [b](/y)", "[a](/x)", "", "")
	assert.True(t, res.Passed)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "link count differs")
}

func TestCompare_TargetLinkStillUsesSourceLocale(t *testing.T) {
	res := Compare("[install](/en/install)", "[install](/en/install)", "en", "zh")
	assert.True(t, res.Passed)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "still uses source locale") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestCompare_TargetLinkMissingLocalePrefix(t *testing.T) {
	res := Compare("[install](/en/install)", "[install](/install)", "en", "zh")

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "missing a locale prefix") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestCompare_LocalizedLinkPairIsClean(t *testing.T) {
	res := Compare("[install](/en/install)", "[install](/zh/install)", "en", "zh")
	assert.Empty(t, res.Warnings)
	assert.True(t, res.Passed)
}

func TestCompare_UnprefixedSourceLinkExpectsPrependedLocale(t *testing.T) {
	res := Compare("[api](/api/reference)", "[api](/zh/api/reference)", "en", "zh")
	assert.Empty(t, res.Warnings, "expected /zh/api/reference to satisfy the localized counterpart")
}

func TestCompare_NewExternalLinkInTargetWarns(t *testing.T) {
	res := Compare("[a](/en/x)", "[a](/zh/x) [b](https://other.example)", "en", "zh")
	assert.True(t, res.Passed)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "no counterpart in the source") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", res.Warnings)
}

func TestCompare_FrontmatterAsymmetry(t *testing.T) {
	src := "---\ntitle: x\nslug: y\n---\nbody"
	tgtMissing := "---\ntitle: x\n---\nbody"
	tgtExtra := "---\ntitle: x\nslug: y\ntranslator: z\n---\nbody"

	res := Compare(src, tgtMissing, "", "")
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "slug")

	res = Compare(src, tgtExtra, "", "")
	assert.True(t, res.Passed)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "translator")
}

func TestCompare_ListItemCountToleratesSmallDrift(t *testing.T) {
	src := "- a\n- b\n- c\n"

	res := Compare(src, "- a\n", "", "")
	assert.Empty(t, res.Warnings)

	res = Compare(src, "", "", "")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "list item count differs")
}
