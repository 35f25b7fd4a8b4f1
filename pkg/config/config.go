package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cisan/caripiutang/pkg/files"
	"github.com/cisan/caripiutang/pkg/models"
)

// EnvPrefix prefixes every environment override, e.g. CARIPIUTANG_SERVICE_BASE_URL.
const EnvPrefix = "CARIPIUTANG"

// Load reads settings and applies environment overrides.
// Priority (highest to lowest):
// 1. Environment variables with CARIPIUTANG_ prefix
// 2. The settings file at path (the project settings file when path is empty)
// 3. Built-in defaults
func Load(path string) (*models.Settings, error) {
	if path == "" {
		path = files.SettingsPath()
	}
	base, err := files.ReadSettingsFile(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, base)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &models.Settings{
		Service: models.ServiceSettings{
			BaseURL: v.GetString("service.base_url"),
			Timeout: v.GetDuration("service.timeout"),
		},
		Form: models.FormSettings{
			DefaultTolerance: v.GetInt("form.default_tolerance"),
			MaxInvoices:      v.GetInt("form.max_invoices"),
			TargetsInput:     v.GetString("form.targets_input"),
			Grouping:         v.GetString("form.grouping"),
			DownloadDir:      v.GetString("form.download_dir"),
		},
		Log: models.LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, s *models.Settings) {
	v.SetDefault("service.base_url", s.Service.BaseURL)
	v.SetDefault("service.timeout", s.Service.Timeout)
	v.SetDefault("form.default_tolerance", s.Form.DefaultTolerance)
	v.SetDefault("form.max_invoices", s.Form.MaxInvoices)
	v.SetDefault("form.targets_input", s.Form.TargetsInput)
	v.SetDefault("form.grouping", s.Form.Grouping)
	v.SetDefault("form.download_dir", s.Form.DownloadDir)
	v.SetDefault("log.level", s.Log.Level)
	v.SetDefault("log.format", s.Log.Format)
	v.SetDefault("log.output", s.Log.Output)
}

// Validate checks values that would otherwise fail later at request time.
func Validate(s *models.Settings) error {
	if strings.TrimSpace(s.Service.BaseURL) == "" {
		return fmt.Errorf("service.base_url must not be empty")
	}
	if s.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must not be negative")
	}
	switch s.Form.TargetsInput {
	case models.TargetsInputMask, models.TargetsInputChips:
	default:
		return fmt.Errorf("form.targets_input must be %q or %q, got %q",
			models.TargetsInputMask, models.TargetsInputChips, s.Form.TargetsInput)
	}
	if s.Form.DefaultTolerance < 0 {
		return fmt.Errorf("form.default_tolerance must not be negative")
	}
	return nil
}
