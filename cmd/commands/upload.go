package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cisan/caripiutang/internal/cli"
	"github.com/cisan/caripiutang/pkg/matcher"
)

// DeleteOutput is the structured result of 'upload delete'.
type DeleteOutput struct {
	UploadID string `json:"upload_id" yaml:"upload_id"`
	Deleted  bool   `json:"deleted" yaml:"deleted"`
}

// NewUploadCommand creates the upload command and its delete subcommand
func NewUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file.xlsx>",
		Short: "Upload a workbook for repeated processing",
		Long: `Store a workbook on the matcher service. The returned upload id can be
passed to 'caripiutang process --upload-id' any number of times, so large
workbooks are sent only once.`,
		Example: `  caripiutang upload piutang.xlsx
  caripiutang upload piutang.xlsx -o json
  caripiutang upload delete 3f2a9c`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}

	cmd.AddCommand(newUploadDeleteCommand())
	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	bindStreams(cmd)
	path := args[0]

	outputFormat, err := cli.OutputFormatFlag(cmd)
	if err != nil {
		return err
	}
	size, err := matcher.ValidateWorkbook(path)
	if err != nil {
		return err
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

	up, err := client.Upload(commandContext(cmd), path)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", filepath.Base(path), err)
	}

	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, up)
	}

	cli.PrintSuccess("Uploaded %s (%s)", up.FileName, cli.FormatBytes(size))
	fmt.Fprintf(cmd.OutOrStdout(), "Upload ID: %s\n", up.ID)
	cli.PrintInfo("Run 'caripiutang process --upload-id %s --targets <amounts>' to match it", up.ID)
	return nil
}

func newUploadDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <upload-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an uploaded workbook",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindStreams(cmd)
			id := args[0]

			outputFormat, err := cli.OutputFormatFlag(cmd)
			if err != nil {
				return err
			}
			if err := cli.ValidateUploadID(id); err != nil {
				return err
			}

			if !yes {
				ok, err := cli.Confirm(fmt.Sprintf("Delete upload %s?", id), false)
				if err != nil {
					return err
				}
				if !ok {
					cli.PrintInfo("Cancelled")
					return nil
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

			deleted, err := client.DeleteUpload(commandContext(cmd), id)
			if err != nil {
				return fmt.Errorf("failed to delete upload %s: %w", id, err)
			}

			if cli.IsStructured(outputFormat) {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, DeleteOutput{UploadID: id, Deleted: deleted})
			}
			if deleted {
				cli.PrintSuccess("Deleted upload %s", id)
			} else {
				cli.PrintWarning("Upload %s was already gone", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
