package matcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxUploadBytes is the largest workbook the service accepts.
const MaxUploadBytes = 10 * 1024 * 1024

// ValidateWorkbook checks that path is an .xlsx file within the upload limit
// and returns its size.
func ValidateWorkbook(path string) (int64, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxUploadBytes {
		return info.Size(), fmt.Errorf("%s is %s, limit %s: %w",
			filepath.Base(path), humanize.IBytes(uint64(info.Size())),
			humanize.IBytes(MaxUploadBytes), ErrFileTooLarge)
	}
	return info.Size(), nil
}
