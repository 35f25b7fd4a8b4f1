package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cisan/caripiutang/pkg/mask"
	"github.com/cisan/caripiutang/pkg/matcher"
)

// ValidateWorkbookPath checks that path names an .xlsx file the service
// will accept.
func ValidateWorkbookPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("workbook path cannot be empty")
	}
	_, err := matcher.ValidateWorkbook(path)
	return err
}

// ValidateTargets checks that raw holds at least one positive amount.
func ValidateTargets(raw string) error {
	if !mask.HasPositive(raw) {
		return fmt.Errorf("targets must contain at least one positive amount: %w", matcher.ErrNoTargets)
	}
	return nil
}

// ValidateUploadID validates an id returned by the upload endpoint
func ValidateUploadID(id string) error {
	if id == "" {
		return fmt.Errorf("upload id cannot be empty")
	}

	invalidChars := []string{"/", "\\", "..", "?", "#", " "}
	for _, char := range invalidChars {
		if strings.Contains(id, char) {
			return fmt.Errorf("upload id contains invalid character: %q", char)
		}
	}

	return nil
}

// ValidateDirectoryPath validates that a directory path exists
func ValidateDirectoryPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"", "text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}
