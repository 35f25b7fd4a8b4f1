package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cisan/caripiutang/pkg/files"
	"github.com/cisan/caripiutang/pkg/models"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	t.Run("defaults when file is missing", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultSettings(), cfg)
	})

	t.Run("file values", func(t *testing.T) {
		custom := models.DefaultSettings()
		custom.Service.BaseURL = "http://matcher:9000"
		custom.Form.TargetsInput = models.TargetsInputChips
		require.NoError(t, files.WriteSettingsFile(path, custom))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://matcher:9000", cfg.Service.BaseURL)
		assert.Equal(t, models.TargetsInputChips, cfg.Form.TargetsInput)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("CARIPIUTANG_SERVICE_BASE_URL", "https://piutang.example.com")
		t.Setenv("CARIPIUTANG_SERVICE_TIMEOUT", "45s")
		t.Setenv("CARIPIUTANG_FORM_MAX_INVOICES", "9")
		t.Setenv("CARIPIUTANG_LOG_LEVEL", "debug")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://piutang.example.com", cfg.Service.BaseURL)
		assert.Equal(t, 45*time.Second, cfg.Service.Timeout)
		assert.Equal(t, 9, cfg.Form.MaxInvoices)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, models.TargetsInputChips, cfg.Form.TargetsInput)
	})

	t.Run("invalid targets input", func(t *testing.T) {
		t.Setenv("CARIPIUTANG_FORM_TARGETS_INPUT", "slider")

		_, err := Load(path)
		assert.ErrorContains(t, err, "form.targets_input")
	})

	t.Run("unreadable file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("form: [x"), 0644))

		_, err := Load(bad)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *models.Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(s *models.Settings) {}},
		{name: "empty base url", mutate: func(s *models.Settings) { s.Service.BaseURL = "  " }, wantErr: true},
		{name: "negative timeout", mutate: func(s *models.Settings) { s.Service.Timeout = -time.Second }, wantErr: true},
		{name: "negative tolerance", mutate: func(s *models.Settings) { s.Form.DefaultTolerance = -1 }, wantErr: true},
		{name: "chips", mutate: func(s *models.Settings) { s.Form.TargetsInput = models.TargetsInputChips }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.DefaultSettings()
			tt.mutate(s)
			err := Validate(s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
