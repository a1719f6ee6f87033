// Package main implements the i18nkit documentation-translation workflow CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"i18nkit/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "i18nkit",
		Short: "Track, diff and validate markdown translations",
		Long: `i18nkit tracks the translation status of markdown files across a
source and target language tree, detects which content changed since a
prior translation, and validates that a translated file preserves the
structural skeleton of its source.`,
		SilenceUsage: true,
	}
	workspaceFlag string
)

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace root (default: walk up from the current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(watchCmd)
}

// workspace resolves the root and loads its config for the commands that
// need an initialized workspace.
func workspace() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	root, err := config.Resolve(cwd, workspaceFlag)
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a translation workspace in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		cfg := config.Default()
		cfg.SourceDir, _ = cmd.Flags().GetString("source-dir")
		cfg.TargetDir, _ = cmd.Flags().GetString("target-dir")
		cfg.SourceLocale, _ = cmd.Flags().GetString("source-locale")
		cfg.TargetLocale, _ = cmd.Flags().GetString("target-locale")

		if err := config.Init(cwd, cfg); err != nil {
			return err
		}
		fmt.Printf("✅ Initialized workspace in %s\n", cwd)
		fmt.Printf("   source: %s (%s)  target: %s (%s)\n", cfg.SourceDir, cfg.SourceLocale, cfg.TargetDir, cfg.TargetLocale)
		return nil
	},
}

func init() {
	defaults := config.Default()
	initCmd.Flags().String("source-dir", defaults.SourceDir, "Directory holding source-language markdown")
	initCmd.Flags().String("target-dir", defaults.TargetDir, "Directory holding translated markdown")
	initCmd.Flags().String("source-locale", defaults.SourceLocale, "Two-letter source locale")
	initCmd.Flags().String("target-locale", defaults.TargetLocale, "Two-letter target locale")
}
