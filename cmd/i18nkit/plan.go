package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"i18nkit/internal/plan"
	"i18nkit/internal/scan"

	"github.com/spf13/cobra"
)

var (
	planListStatus string
	planSetStatus  string
	planSetNotes   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect and edit the translation plan file",
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plan entries, optionally filtered by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := workspace()
		if err != nil {
			return err
		}

		p, err := plan.Load(filepath.Join(root, cfg.PlanFile))
		if err != nil {
			return err
		}

		shown := 0
		for _, path := range p.Paths() {
			entry := p.Entries[path]
			if planListStatus != "" && string(entry.Status) != planListStatus {
				continue
			}
			shown++
			fmt.Printf("%-13s %s", entry.Status, path)
			if entry.TranslatedAt != "" {
				fmt.Printf("  (translated %s)", entry.TranslatedAt)
			}
			if entry.Notes != "" {
				fmt.Printf("  — %s", entry.Notes)
			}
			fmt.Println()
		}
		fmt.Printf("\n📋 %d entr%s\n", shown, pluralY(shown))
		return nil
	},
}

var planSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Set the status of one plan entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := workspace()
		if err != nil {
			return err
		}

		status := plan.Status(planSetStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status %q (want pending, needs_update, done or deleted)", planSetStatus)
		}

		path := args[0]
		planPath := filepath.Join(root, cfg.PlanFile)
		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		// Marking a file done pins the current source hash so later scans
		// can tell whether the source moved on.
		var sourceHash string
		if status == plan.StatusDone {
			content, err := os.ReadFile(filepath.Join(root, cfg.SourceDir, path))
			if err != nil {
				return fmt.Errorf("cannot mark %s done: %w", path, err)
			}
			sourceHash = scan.Hash(content)
		}

		p.Update(path, func(e *plan.Entry) {
			e.Status = status
			if planSetNotes != "" {
				e.Notes = planSetNotes
			}
			if status == plan.StatusDone {
				e.SourceHash = sourceHash
				e.TranslatedAt = time.Now().UTC().Format(time.RFC3339)
			}
		})

		if err := p.Save(planPath); err != nil {
			return err
		}
		fmt.Printf("✅ %s -> %s\n", path, status)
		return nil
	},
}

func init() {
	planListCmd.Flags().StringVar(&planListStatus, "status", "", "Only show entries with this status")
	planSetCmd.Flags().StringVar(&planSetStatus, "status", "", "New status for the entry")
	planSetCmd.Flags().StringVar(&planSetNotes, "notes", "", "Free-form note to attach to the entry")
	_ = planSetCmd.MarkFlagRequired("status")

	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planSetCmd)
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
