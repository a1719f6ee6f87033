package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"i18nkit/internal/diffmap"
	"i18nkit/internal/diffparse"
	"i18nkit/internal/gitdiff"
	"i18nkit/internal/markdown"

	"github.com/spf13/cobra"
)

var diffRef string

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Show which sections of a markdown file changed since a git reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		raw, err := gitdiff.Diff("", diffRef, path)
		if err != nil {
			return err
		}

		hunks := diffparse.Parse(raw)
		if len(hunks) == 0 {
			fmt.Printf("✅ No changes in %s since %s.\n", path, diffRef)
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		sections := markdown.Split(string(content))

		result := diffmap.Map(hunks, sections)
		for _, h := range result.Invalid {
			log.Printf("⚠️ skipping hunk with no new-file position: %s", h.Header)
		}

		fmt.Printf("📝 %d hunk(s) in %d section(s) of %s (vs %s):\n\n",
			len(hunks)-len(result.Invalid), len(result.Affected), filepath.Base(path), diffRef)

		for _, aff := range result.Affected {
			ops := make([]string, len(aff.Operations))
			for i, op := range aff.Operations {
				ops[i] = string(op)
			}
			title := aff.Section.Title
			if aff.Section.Level > 0 {
				title = strings.Repeat("#", aff.Section.Level) + " " + title
			}
			fmt.Printf("%s  [%s, %d hunk(s)]\n", title, strings.Join(ops, ", "), aff.HunkCount)
			for _, h := range aff.Hunks {
				start, end := h.LineRange()
				fmt.Printf("  lines %d-%d: %s\n", start, end, h.Description)
			}
			fmt.Println()
		}

		// Section-level summary against the reference revision; best effort
		// since the file may not exist at the reference yet.
		if old, err := gitdiff.Show("", diffRef, path); err == nil {
			printChangeReport(markdown.CompareSections(markdown.Split(old), sections))
		}
		return nil
	},
}

func printChangeReport(report markdown.ChangeReport) {
	if len(report.Added)+len(report.Removed)+len(report.Modified) == 0 {
		return
	}
	fmt.Println("Section summary:")
	for _, key := range report.Added {
		fmt.Printf("  + %s\n", key)
	}
	for _, key := range report.Removed {
		fmt.Printf("  - %s\n", key)
	}
	for _, key := range report.Modified {
		fmt.Printf("  ~ %s\n", key)
	}
}

func init() {
	diffCmd.Flags().StringVar(&diffRef, "ref", "HEAD", "Git reference to diff against")
}
