package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cisan/caripiutang/pkg/config"
	"github.com/cisan/caripiutang/pkg/logger"
	"github.com/cisan/caripiutang/pkg/matcher"
	"github.com/cisan/caripiutang/pkg/models"
)

// CommandContext carries the settings, logger and service client of a
// command invocation.
type CommandContext struct {
	Settings *models.Settings
	Logger   *zap.Logger
	client   *matcher.Client
}

// NewCommandContext loads settings from the --config file and the
// environment, then applies --service-url. Flags that are not defined on
// cmd are ignored.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if url, _ := cmd.Flags().GetString("service-url"); url != "" {
		settings.Service.BaseURL = url
	}

	log, err := logger.New(&logger.Config{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: settings.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &CommandContext{Settings: settings, Logger: log}, nil
}

// Client returns the matcher client, creating it on first use.
func (c *CommandContext) Client() (*matcher.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	client, err := matcher.NewClient(c.Settings.Service.BaseURL, c.Settings.Service.Timeout, c.Logger)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

// Close flushes buffered log entries.
func (c *CommandContext) Close() {
	_ = c.Logger.Sync()
}

// OutputFormatFlag returns the validated --output flag value.
func OutputFormatFlag(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
