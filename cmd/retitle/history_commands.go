package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"retitle/internal/history"
	"retitle/internal/renamer"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled rename batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if batches == nil {
					batches = []history.Batch{}
				}
				return writeJSON(cmd, batches)
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No rename batches recorded")
				return nil
			}
			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				rows = append(rows, []string{
					b.ID,
					b.StartedAt.Local().Format(time.DateTime),
					fmt.Sprintf("%d", b.Count),
					yesNo(b.Reverted()),
					b.Dir,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Batch", "Started", "Files", "Reverted", "Directory"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum batches to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output batches as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show BATCH",
		Short: "Show the files of a rename batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			batch, err := store.Batch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entries, err := store.Entries(cmd.Context(), batch.ID)
			if err != nil {
				return err
			}
			if asJSON {
				if entries == nil {
					entries = []history.Entry{}
				}
				return writeJSON(cmd, struct {
					Batch   *history.Batch  `json:"batch"`
					Entries []history.Entry `json:"entries"`
				}{batch, entries})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintf(out, "Batch %s in %s (%s)\n", batch.ID, batch.Dir, batch.StartedAt.Local().Format(time.DateTime))
			if batch.Reverted() {
				fmt.Fprintf(out, "Reverted %s\n", batch.RevertedAt.Local().Format(time.DateTime))
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					colorizeStatus(renamer.Status(e.Status), colorize),
					e.OldName,
					e.NewName,
					e.Error,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Status", "Original", "Renamed To", "Note"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the batch as JSON")
	return cmd
}

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo BATCH",
		Short: "Restore the original file names of a rename batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := renamer.New(nil, store, renamer.Options{}, logger).Undo(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			if result != nil {
				fmt.Fprintf(out, "Restored %d file(s) from batch %s\n", result.Restored, result.Batch.ID)
				for _, f := range result.Failed {
					fmt.Fprintln(out, renderStatusLine(f.NewName, statusError, f.Error, shouldColorize(out)))
				}
			}
			if errors.Is(err, renamer.ErrAlreadyReverted) {
				return fmt.Errorf("%w (nothing to do)", err)
			}
			return err
		},
	}
}
