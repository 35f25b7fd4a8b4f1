package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cisan/caripiutang/internal/cli"
	"github.com/cisan/caripiutang/pkg/mask"
	"github.com/cisan/caripiutang/pkg/submission"
)

// FormatOutput shows how the form reads a target amount entry.
type FormatOutput struct {
	Raw         string   `json:"raw" yaml:"raw"`
	Display     string   `json:"display" yaml:"display"`
	Normalized  string   `json:"normalized" yaml:"normalized"`
	Targets     []string `json:"targets" yaml:"targets"`
	Total       string   `json:"total" yaml:"total"`
	SubmitReady bool     `json:"submit_ready" yaml:"submit_ready"`
}

// NewFormatCommand creates the format command
func NewFormatCommand() *cobra.Command {
	var grouping string

	cmd := &cobra.Command{
		Use:   "format <amounts>...",
		Short: "Preview how target amounts are grouped and submitted",
		Long: `Show the grouped display, the normalized value, and the amounts that
would be sent to the service for a target entry. Several arguments are
joined with the separator. Nothing is sent.`,
		Example: `  caripiutang format "1000000,2500000"
  caripiutang format 1000000 0500 --grouping "'"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindStreams(cmd)

			outputFormat, err := cli.OutputFormatFlag(cmd)
			if err != nil {
				return err
			}
			runes := []rune(grouping)
			if len(runes) != 1 || mask.NewFormatter(runes[0]).Grouping != runes[0] {
				return fmt.Errorf("grouping must be one character other than a digit, space or %q, got %q",
					mask.Separator, grouping)
			}

			output := formatAmounts(strings.Join(args, string(mask.Separator)), runes[0])
			if cli.IsStructured(outputFormat) {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, output)
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Row("Display", output.Display)
			table.Row("Normalized", output.Normalized)
			table.Row("Targets", strings.Join(output.Targets, " "))
			table.Row("Total", output.Total)
			table.Flush()

			if !output.SubmitReady {
				cli.PrintWarning("No positive amount; the form would not submit")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grouping, "grouping", ".", "Grouping mark for display")
	return cmd
}

func formatAmounts(raw string, grouping rune) FormatOutput {
	f := mask.NewFormatter(grouping)
	normalized := mask.Normalize(raw)
	targets := submission.Targets(normalized)
	if targets == nil {
		targets = []string{}
	}
	return FormatOutput{
		Raw:         raw,
		Display:     f.Format(raw),
		Normalized:  normalized,
		Targets:     targets,
		Total:       f.FormatDigits(submission.Total(targets).String()),
		SubmitReady: mask.HasPositive(raw),
	}
}
