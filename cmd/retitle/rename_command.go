package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"retitle/internal/history"
	"retitle/internal/preflight"
	"retitle/internal/renamer"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		asJSON     bool
		workers    int
		extensions []string
	)

	cmd := &cobra.Command{
		Use:   "rename DIR",
		Short: "Normalize the titles of the media files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}

			check := preflight.CheckDirectoryAccess("Target directory", dir)
			if dryRun {
				check = preflight.CheckReadable("Target directory", dir)
			}
			if !check.Passed {
				return fmt.Errorf("%s: %s", check.Name, check.Detail)
			}

			opts := renamer.OptionsFromConfig(cfg.Rename)
			if cmd.Flags().Changed("workers") {
				if workers <= 0 {
					return fmt.Errorf("--workers must be positive")
				}
				opts.Workers = workers
			}
			if cmd.Flags().Changed("ext") {
				opts.Extensions = extensions
			}

			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}

			var store *history.Store
			if !dryRun {
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
				if store, err = ctx.openHistory(); err != nil {
					return err
				}
				defer store.Close()
			}

			plan, err := renamer.New(engine, store, opts, logger).Run(cmd.Context(), dir, dryRun)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, plan)
			}
			out := cmd.OutOrStdout()
			writePlan(out, plan, shouldColorize(out))
			fmt.Fprintln(out, planSummary(plan, dryRun))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the planned renames without touching any file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the plan as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent normalization workers (default rename.workers)")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Only consider these extensions, e.g. mp3,m4a (default rename.extensions)")
	return cmd
}

func writePlan(w io.Writer, plan *renamer.Plan, colorize bool) {
	if len(plan.Entries) == 0 {
		fmt.Fprintf(w, "No matching files in %s\n", plan.Dir)
		return
	}
	rows := make([][]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		newName := e.NewName
		if newName == e.OldName {
			newName = "-"
		}
		rows = append(rows, []string{
			colorizeStatus(e.Status, colorize),
			e.OldName,
			newName,
			e.ErrorText(),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Status", "File", "New Name", "Note"}, rows, nil))
}

func planSummary(plan *renamer.Plan, dryRun bool) string {
	parts := make([]string, 0, 5)
	for _, sc := range plan.Summary() {
		parts = append(parts, fmt.Sprintf("%d %s", sc.Count, sc.Status))
	}
	counts := "nothing to do"
	if len(parts) > 0 {
		counts = strings.Join(parts, ", ")
	}
	switch {
	case dryRun:
		return "Dry run: " + counts
	case plan.BatchID != "":
		return fmt.Sprintf("Batch %s: %s", plan.BatchID, counts)
	default:
		return counts
	}
}
