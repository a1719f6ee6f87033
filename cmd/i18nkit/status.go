package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"i18nkit/internal/plan"
	"i18nkit/internal/scan"
	"i18nkit/internal/storage"

	"github.com/spf13/cobra"
)

var (
	statusStrict  bool
	statusHistory int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Scan source and target trees and report per-file translation status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := workspace()
		if err != nil {
			return err
		}

		if statusHistory > 0 {
			return showHistory(cmd.Context(), filepath.Join(root, cfg.HistoryDB), statusHistory)
		}

		sourceFiles, err := scan.Walk(filepath.Join(root, cfg.SourceDir))
		if err != nil {
			return fmt.Errorf("failed to scan source tree: %w", err)
		}
		targetFiles, err := scan.Walk(filepath.Join(root, cfg.TargetDir))
		if err != nil {
			return fmt.Errorf("failed to scan target tree: %w", err)
		}

		planPath := filepath.Join(root, cfg.PlanFile)
		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		statuses := scan.Classify(sourceFiles, targetFiles, p)
		counts := make(map[plan.Status]int)
		var runFiles []storage.RunFile
		stale := 0
		for _, fs := range statuses {
			counts[fs.Status]++
			fmt.Printf("%-13s %s\n", fs.Status, fs.Path)
			runFiles = append(runFiles, storage.RunFile{Path: fs.Path, Status: string(fs.Status)})
			if fs.Status == plan.StatusPending || fs.Status == plan.StatusNeedsUpdate {
				stale++
			}
		}

		fmt.Printf("\n📊 %d file(s): %d done, %d pending, %d needs_update, %d deleted\n",
			len(statuses), counts[plan.StatusDone], counts[plan.StatusPending],
			counts[plan.StatusNeedsUpdate], counts[plan.StatusDeleted])

		scan.Apply(p, statuses)
		if err := p.Save(planPath); err != nil {
			return err
		}

		recordRun(cmd.Context(), filepath.Join(root, cfg.HistoryDB), "status", runFiles, stale)

		if statusStrict && stale > 0 {
			return fmt.Errorf("%d file(s) need translation work", stale)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusStrict, "strict", false, "Exit non-zero when any file is pending or needs_update")
	statusCmd.Flags().IntVar(&statusHistory, "history", 0, "Show the last N recorded runs instead of scanning")
}

// recordRun best-effort appends the run to the history store; history is an
// aid, never a reason to fail the command.
func recordRun(ctx context.Context, dbPath, command string, files []storage.RunFile, failed int) {
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Printf("⚠️ history store unavailable: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(ctx, command, files, failed); err != nil {
		log.Printf("⚠️ failed to record run: %v", err)
	}
}

func showHistory(ctx context.Context, dbPath string, n int) error {
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(ctx, n)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs yet.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("#%d  %s  %-9s %d file(s), %d flagged\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Command, r.FilesTotal, r.FilesFailed)
	}
	return nil
}
