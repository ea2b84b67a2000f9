package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"retitle/internal/logging"
	"retitle/internal/titlenorm"
)

type normalizeOutput struct {
	titlenorm.Result
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var trace, asJSON, strict bool

	cmd := &cobra.Command{
		Use:   "normalize [TITLE...]",
		Short: "Normalize titles given as arguments or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			titles := args
			if len(titles) == 0 {
				if titles, err = readLines(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			var results []normalizeOutput
			for _, raw := range titles {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				res, err := engine.Explain(raw)
				item := normalizeOutput{Result: res}
				if err != nil {
					if strict {
						return fmt.Errorf("normalize %q: %w", raw, err)
					}
					logging.WarnWithContext(logger, "normalization failed, keeping raw title", "normalize_fallback",
						logging.String(logging.FieldTitle, raw),
						logging.Error(err),
					)
					item.Input = raw
					item.Output = titlenorm.Fallback(raw, "", err)
					item.Fallback = true
					item.Error = err.Error()
				}
				if !trace {
					item.Steps = nil
				}

				if asJSON {
					results = append(results, item)
					continue
				}
				fmt.Fprintln(out, item.Output)
				if trace {
					writeTrace(out, item)
				}
			}

			if asJSON {
				if results == nil {
					results = []normalizeOutput{}
				}
				return writeJSON(cmd, results)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "Show every intermediate pipeline value")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first title that cannot be normalized")
	return cmd
}

func writeTrace(w io.Writer, item normalizeOutput) {
	for _, step := range item.Steps {
		fmt.Fprintf(w, "  %-10s %s\n", step.Name+":", step.Value)
	}
	for _, a := range item.Annotations {
		fmt.Fprintf(w, "  %-10s %s (%s)\n", "annotation:", a.Text, a.Kind)
	}
	if item.Error != "" {
		fmt.Fprintf(w, "  %-10s %s\n", "error:", item.Error)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
