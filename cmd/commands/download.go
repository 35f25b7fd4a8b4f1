package commands

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cisan/caripiutang/internal/cli"
)

// DownloadOutput is the structured result of the download command.
type DownloadOutput struct {
	Path  string `json:"path" yaml:"path"`
	Bytes int64  `json:"bytes" yaml:"bytes"`
}

// NewDownloadCommand creates the download command
func NewDownloadCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download <file-name|url>",
		Short: "Download a result workbook",
		Long: `Fetch a result workbook produced by 'caripiutang process'. The argument is
either the result file name, the download path the service returned, or a
full URL.`,
		Example: `  caripiutang download hasil_piutang.xlsx
  caripiutang download /api/download/hasil_piutang.xlsx --dir ./hasil`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindStreams(cmd)

			outputFormat, err := cli.OutputFormatFlag(cmd)
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

			if dir == "" {
				dir = cctx.Settings.Form.DownloadDir
			}

			path, err := client.Download(commandContext(cmd), downloadLocation(args[0]), dir)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", args[0], err)
			}

			var size int64
			if info, err := os.Stat(path); err == nil {
				size = info.Size()
			}

			if cli.IsStructured(outputFormat) {
				return cli.OutputResults(cmd.OutOrStdout(), outputFormat, DownloadOutput{Path: path, Bytes: size})
			}
			cli.PrintSuccess("Saved %s (%s)", path, cli.FormatBytes(size))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to save into (default from settings)")
	return cmd
}

// downloadLocation turns a bare file name into the service's download path.
func downloadLocation(arg string) string {
	if strings.Contains(arg, "/") {
		return arg
	}
	return "/api/download/" + url.PathEscape(arg)
}
