package models

import "time"

// Targets input variants
const (
	TargetsInputMask  = "mask"
	TargetsInputChips = "chips"
)

// Settings represents the application configuration
type Settings struct {
	Service ServiceSettings `yaml:"service"`
	Form    FormSettings    `yaml:"form"`
	Log     LogSettings     `yaml:"log"`
}

// ServiceSettings locates the matcher service
type ServiceSettings struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// FormSettings controls the input form
type FormSettings struct {
	DefaultTolerance int    `yaml:"default_tolerance"`
	MaxInvoices      int    `yaml:"max_invoices"`
	TargetsInput     string `yaml:"targets_input"` // "mask" or "chips"
	Grouping         string `yaml:"grouping"`
	DownloadDir      string `yaml:"download_dir"`
}

// LogSettings controls the log sink
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Service: ServiceSettings{
			BaseURL: "http://localhost:8000",
			Timeout: 2 * time.Minute,
		},
		Form: FormSettings{
			DefaultTolerance: 100,
			MaxInvoices:      5,
			TargetsInput:     TargetsInputMask,
			Grouping:         ".",
			DownloadDir:      ".",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
			Output: "",
		},
	}
}

// GroupingRune returns the configured grouping mark, or 0 when unset.
func (f FormSettings) GroupingRune() rune {
	for _, r := range f.Grouping {
		return r
	}
	return 0
}
