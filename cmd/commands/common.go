package commands

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cisan/caripiutang/internal/cli"
)

// bindStreams points the cli printers at the command's writers.
func bindStreams(cmd *cobra.Command) {
	cli.SetStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printer formats counts the way the service's users read them.
var printer = message.NewPrinter(language.Indonesian)
