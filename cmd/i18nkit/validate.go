package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"i18nkit/internal/scan"
	"i18nkit/internal/storage"
	"i18nkit/internal/validate"

	"github.com/spf13/cobra"
)

var (
	validateDir          bool
	validateSourceLocale string
	validateTargetLocale string
)

var validateCmd = &cobra.Command{
	Use:   "validate [<source> <target>]",
	Short: "Check that translated files preserve the structure of their source",
	Long: `validate compares the structural skeleton (headings, code blocks,
links, list items, frontmatter keys) of a source file and its translation.
With --dir it walks the whole workspace instead of a single pair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateDir {
			if len(args) != 0 {
				return fmt.Errorf("--dir takes no positional arguments")
			}
			return validateWorkspace(cmd)
		}
		if len(args) != 2 {
			return fmt.Errorf("expected <source> <target> arguments (or --dir)")
		}
		return validatePair(args[0], args[1])
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateDir, "dir", false, "Validate every file pair in the workspace")
	validateCmd.Flags().StringVar(&validateSourceLocale, "source-locale", "", "Two-letter source locale (default: detect from path)")
	validateCmd.Flags().StringVar(&validateTargetLocale, "target-locale", "", "Two-letter target locale (default: detect from path)")
}

// validatePair is single-pair mode: a missing file is fatal since no partial
// result is possible.
func validatePair(sourcePath, targetPath string) error {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	target, err := os.ReadFile(targetPath)
	if err != nil {
		return fmt.Errorf("failed to read target: %w", err)
	}

	srcLocale, tgtLocale := resolveLocales(sourcePath, targetPath)
	res := validate.Compare(string(source), string(target), srcLocale, tgtLocale)
	printResult(targetPath, res)

	if !res.Passed {
		return fmt.Errorf("validation failed: %d error(s)", len(res.Errors))
	}
	return nil
}

// validateWorkspace is batch mode: per-file problems are reported and
// processing continues; the aggregate fails if any file failed.
func validateWorkspace(cmd *cobra.Command) error {
	root, cfg, err := workspace()
	if err != nil {
		return err
	}

	sourceDir := filepath.Join(root, cfg.SourceDir)
	targetDir := filepath.Join(root, cfg.TargetDir)

	sourceFiles, err := scan.Walk(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to scan source tree: %w", err)
	}

	paths := make([]string, 0, len(sourceFiles))
	for p := range sourceFiles {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	srcLocale := validateSourceLocale
	if srcLocale == "" {
		srcLocale = cfg.SourceLocale
	}
	tgtLocale := validateTargetLocale
	if tgtLocale == "" {
		tgtLocale = cfg.TargetLocale
	}

	failed := 0
	var runFiles []storage.RunFile
	for _, rel := range paths {
		source, err := os.ReadFile(filepath.Join(sourceDir, rel))
		if err != nil {
			failed++
			fmt.Printf("❌ %s: cannot read source: %v\n", rel, err)
			runFiles = append(runFiles, storage.RunFile{Path: rel, Status: "fail", Detail: err.Error()})
			continue
		}

		target, err := os.ReadFile(filepath.Join(targetDir, rel))
		if err != nil {
			failed++
			fmt.Printf("❌ %s: missing translation\n", rel)
			runFiles = append(runFiles, storage.RunFile{Path: rel, Status: "fail", Detail: "missing translation"})
			continue
		}

		res := validate.Compare(string(source), string(target), srcLocale, tgtLocale)
		if res.Passed {
			fmt.Printf("✅ %s", rel)
			if len(res.Warnings) > 0 {
				fmt.Printf("  (%d warning(s))", len(res.Warnings))
			}
			fmt.Println()
			runFiles = append(runFiles, storage.RunFile{Path: rel, Status: "pass"})
		} else {
			failed++
			fmt.Printf("❌ %s\n", rel)
			for _, e := range res.Errors {
				fmt.Printf("   error: %s\n", e)
			}
			runFiles = append(runFiles, storage.RunFile{Path: rel, Status: "fail", Detail: res.Errors[0]})
		}
		for _, w := range res.Warnings {
			fmt.Printf("   warning: %s\n", w)
		}
	}

	fmt.Printf("\n📊 %d file(s) checked, %d failed\n", len(paths), failed)
	recordRun(cmd.Context(), filepath.Join(root, cfg.HistoryDB), "validate", runFiles, failed)

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func resolveLocales(sourcePath, targetPath string) (string, string) {
	src := validateSourceLocale
	if src == "" {
		src = validate.DetectLocale(filepath.ToSlash(sourcePath))
	}
	tgt := validateTargetLocale
	if tgt == "" {
		tgt = validate.DetectLocale(filepath.ToSlash(targetPath))
	}
	return src, tgt
}

func printResult(path string, res validate.Result) {
	for _, e := range res.Errors {
		fmt.Printf("error: %s\n", e)
	}
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if res.Passed {
		fmt.Printf("✅ PASS %s\n", path)
	} else {
		fmt.Printf("❌ FAIL %s\n", path)
	}
}
