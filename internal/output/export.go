package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export writes the report to path in the format implied by its extension
func Export(report *Report, path string) error {
	var (
		data []byte
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		data, err = BuildXLSX(report)
	case ".pdf":
		data, err = BuildPDF(report)
	case ".csv":
		data, err = CSVFormatter{}.Format(report)
	case ".json":
		data, err = JSONFormatter{Pretty: true}.Format(report)
	case ".txt":
		data, err = ConsoleFormatter{}.Format(report)
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx, .pdf, .csv, .json or .txt)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
