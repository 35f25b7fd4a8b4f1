package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cisan/caripiutang/pkg/models"
)

const (
	AppDir       = ".caripiutang"
	DownloadsDir = "downloads"
	SettingsFile = "settings.yaml"
	LogFile      = "caripiutang.log"
)

// SettingsPath returns the project settings file path.
func SettingsPath() string {
	return filepath.Join(AppDir, SettingsFile)
}

// LogPath returns the default log file path.
func LogPath() string {
	return filepath.Join(AppDir, LogFile)
}

// InitProjectStructure creates the project directory and writes default
// settings unless a settings file already exists.
func InitProjectStructure() error {
	dirs := []string{
		AppDir,
		filepath.Join(AppDir, DownloadsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SettingsPath()); err == nil {
		return nil
	}
	settings := models.DefaultSettings()
	settings.Form.DownloadDir = filepath.Join(AppDir, DownloadsDir)
	return WriteSettings(settings)
}

// ReadSettings reads the project settings file, falling back to defaults
// when it does not exist.
func ReadSettings() (*models.Settings, error) {
	return ReadSettingsFile(SettingsPath())
}

// ReadSettingsFile reads settings from path. Keys missing from the file keep
// their default values.
func ReadSettingsFile(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return settings, nil
}

// WriteSettings writes settings to the project settings file.
func WriteSettings(settings *models.Settings) error {
	return WriteSettingsFile(SettingsPath(), settings)
}

// WriteSettingsFile writes settings to path as YAML.
func WriteSettingsFile(path string, settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// WriteFile writes content to path.
func WriteFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
