package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cisan/caripiutang/internal/cli"
	"github.com/cisan/caripiutang/pkg/mask"
	"github.com/cisan/caripiutang/pkg/models"
	"github.com/cisan/caripiutang/pkg/submission"
)

// ProcessOutput is the structured result of the process command.
type ProcessOutput struct {
	Found       bool     `json:"found" yaml:"found"`
	TotalRows   int      `json:"total_rows" yaml:"total_rows"`
	DownloadURL string   `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	FileName    string   `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Targets     []string `json:"targets" yaml:"targets"`
	Tolerance   int      `json:"tolerance" yaml:"tolerance"`
	MaxInvoices int      `json:"max_invoices" yaml:"max_invoices"`
	SavedTo     string   `json:"saved_to,omitempty" yaml:"saved_to,omitempty"`
}

type processOptions struct {
	file        string
	uploadID    string
	targets     string
	tolerance   string
	maxInvoices int
	downloadDir string
}

// NewProcessCommand creates the process command
func NewProcessCommand() *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Find invoice combinations matching target amounts",
		Long: `Send a workbook to the matcher service and report the rows whose
invoice combinations add up to one of the target amounts.

Targets are entered the way the form shows them: several amounts separated
by commas, with or without grouping marks. Blank segments are ignored.
Tolerance defaults to the configured value (100) when omitted.`,
		Example: `  # Match two payments against a workbook
  caripiutang process -f piutang.xlsx -t "1.000.000, 2.500.000"

  # Use a workbook uploaded earlier and save the result
  caripiutang process --upload-id 3f2a9c -t 750000 --download ./hasil

  # Machine-readable output
  caripiutang process -f piutang.xlsx -t 500000 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Workbook to process (.xlsx)")
	cmd.Flags().StringVar(&opts.uploadID, "upload-id", "", "Id of a workbook uploaded with 'caripiutang upload'")
	cmd.Flags().StringVarP(&opts.targets, "targets", "t", "", "Target amounts, comma separated")
	cmd.Flags().StringVar(&opts.tolerance, "tolerance", "", "Allowed difference per target (default from settings)")
	cmd.Flags().IntVar(&opts.maxInvoices, "max-invoices", 0, "Largest combination size, 1-20 (default from settings)")
	cmd.Flags().StringVarP(&opts.downloadDir, "download", "d", "", "Save the result workbook into this directory")

	cmd.MarkFlagsMutuallyExclusive("file", "upload-id")
	cmd.MarkFlagsOneRequired("file", "upload-id")
	_ = cmd.MarkFlagRequired("targets")

	return cmd
}

func runProcess(cmd *cobra.Command, opts processOptions) error {
	bindStreams(cmd)

	outputFormat, err := cli.OutputFormatFlag(cmd)
	if err != nil {
		return err
	}
	if opts.file != "" {
		if err := cli.ValidateWorkbookPath(opts.file); err != nil {
			return err
		}
	} else if err := cli.ValidateUploadID(opts.uploadID); err != nil {
		return err
	}
	if err := cli.ValidateTargets(opts.targets); err != nil {
		return err
	}
	if opts.downloadDir != "" {
		if err := cli.ValidateDirectoryPath(opts.downloadDir); err != nil {
			return err
		}
	}

	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cctx.Close()

	client, err := cctx.Client()
	if err != nil {
		return err
	}

	maxInvoices := opts.maxInvoices
	if maxInvoices == 0 {
		maxInvoices = cctx.Settings.Form.MaxInvoices
	}
	sub := models.Submission{
		FilePath:    opts.file,
		UploadID:    opts.uploadID,
		Targets:     submission.Targets(mask.Normalize(opts.targets)),
		Tolerance:   submission.Tolerance(opts.tolerance, cctx.Settings.Form.DefaultTolerance),
		MaxInvoices: submission.ClampMaxInvoices(maxInvoices),
	}

	ctx := commandContext(cmd)
	result, err := client.Process(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to process workbook: %w", err)
	}

	output := ProcessOutput{
		Found:       result.Found,
		TotalRows:   result.TotalRows,
		DownloadURL: result.DownloadURL,
		FileName:    result.FileName,
		Targets:     sub.Targets,
		Tolerance:   sub.Tolerance,
		MaxInvoices: sub.MaxInvoices,
	}

	if opts.downloadDir != "" && result.Found && result.DownloadURL != "" {
		path, err := client.Download(ctx, result.DownloadURL, opts.downloadDir)
		if err != nil {
			return fmt.Errorf("failed to download result: %w", err)
		}
		output.SavedTo = path
	}

	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, output)
	}

	out := cmd.OutOrStdout()
	if output.Found {
		printer.Fprintf(out, "Ditemukan %d baris cocok.\n", output.TotalRows)
		if output.DownloadURL != "" {
			fmt.Fprintf(out, "Unduh file hasil: %s\n", client.ResolveURL(output.DownloadURL))
		}
	} else {
		fmt.Fprintln(out, "Tidak ada kombinasi yang cocok.")
	}

	if !cli.Quiet() {
		fmt.Fprintln(out)
		table := cli.NewTableFormatter(out)
		table.Row("Target", cli.FormatAmounts(output.Targets))
		table.Row("Toleransi", mask.FormatDigits(fmt.Sprint(output.Tolerance)))
		table.Row("Maks. invoice", fmt.Sprint(output.MaxInvoices))
		table.Flush()
	}

	if output.SavedTo != "" {
		cli.PrintSuccess("Hasil disimpan di %s", output.SavedTo)
	}
	return nil
}
