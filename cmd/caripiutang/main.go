package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cisan/caripiutang/cmd/commands"
	"github.com/cisan/caripiutang/internal/cli"
	"github.com/cisan/caripiutang/pkg/config"
	"github.com/cisan/caripiutang/pkg/files"
	"github.com/cisan/caripiutang/pkg/logger"
	"github.com/cisan/caripiutang/pkg/matcher"
	"github.com/cisan/caripiutang/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagConfig     string
	flagServiceURL string
	flagOutput     string
	flagQuiet      bool
	flagNoColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "caripiutang [file.xlsx]",
	Short: "Match incoming payments against outstanding invoices",
	Long: `caripiutang finds which invoices in a receivables workbook add up to the
payments you received. Run it without a subcommand to open the form, or use
'process' to match from scripts.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, false)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if flagServiceURL != "" {
			settings.Service.BaseURL = flagServiceURL
		}

		// The form owns the terminal, so logs go to a file.
		logCfg := &logger.Config{
			Level:  settings.Log.Level,
			Format: settings.Log.Format,
			Output: settings.Log.Output,
		}
		if logCfg.Output == "" {
			logCfg.Output = files.LogPath()
		}
		log, err := logger.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer log.Sync()

		client, err := matcher.NewClient(settings.Service.BaseURL, settings.Service.Timeout, log)
		if err != nil {
			return err
		}

		opts := tui.Options{Settings: settings, Service: client, Logger: log}
		if len(args) == 1 {
			opts.FilePath = args[0]
		}

		p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a caripiutang project",
	Long:  `Creates the .caripiutang folder with default settings in the current directory`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		cli.PrintInfo("Initializing caripiutang in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created %s", files.AppDir)
		cli.PrintSuccess("Settings are in %s", files.SettingsPath())
		cli.PrintInfo("Run 'caripiutang' to open the form.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of caripiutang",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "caripiutang version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "Settings file (default .caripiutang/settings.yaml)")
	pf.StringVar(&flagServiceURL, "service-url", "", "Matcher service base URL")
	pf.StringVarP(&flagOutput, "output", "o", "text", "Output format: text, json, yaml")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only print results and errors")
	pf.BoolVar(&flagNoColor, "no-color", false, "Plain text status markers")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewProcessCommand())
	rootCmd.AddCommand(commands.NewUploadCommand())
	rootCmd.AddCommand(commands.NewDownloadCommand())
	rootCmd.AddCommand(commands.NewFormatCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
