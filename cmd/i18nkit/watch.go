package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"i18nkit/internal/plan"
	"i18nkit/internal/scan"
	"i18nkit/internal/watch"

	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the status scan whenever source or target files change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := workspace()
		if err != nil {
			return err
		}

		sourceDir := filepath.Join(root, cfg.SourceDir)
		targetDir := filepath.Join(root, cfg.TargetDir)
		planPath := filepath.Join(root, cfg.PlanFile)

		rescan := func() {
			sourceFiles, err := scan.Walk(sourceDir)
			if err != nil {
				fmt.Printf("⚠️ scan failed: %v\n", err)
				return
			}
			targetFiles, err := scan.Walk(targetDir)
			if err != nil {
				fmt.Printf("⚠️ scan failed: %v\n", err)
				return
			}
			p, err := plan.Load(planPath)
			if err != nil {
				fmt.Printf("⚠️ %v\n", err)
				return
			}

			fmt.Printf("\n🔄 %s\n", time.Now().Format("15:04:05"))
			for _, fs := range scan.Classify(sourceFiles, targetFiles, p) {
				fmt.Printf("%-13s %s\n", fs.Status, fs.Path)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("👀 Watching %s and %s (Ctrl-C to stop)...\n", cfg.SourceDir, cfg.TargetDir)
		rescan()

		err = watch.Run(ctx, []string{sourceDir, targetDir}, watchDebounce, rescan)
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n👋 Stopped.")
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before rescanning after a change")
}
