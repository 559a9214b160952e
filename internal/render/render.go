// Package render emits the quote and OE upload workbooks from a partitioned
// reconciliation result. It owns all spreadsheet layout; the pipeline hands
// it finished rows and the run configuration.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// saveAtomic writes the workbook to a temporary file in the target
// directory and renames it into place, so a failed run never leaves a
// partial or truncated document behind.
func saveAtomic(f *excelize.File, path string) error {
	const op = "saveAtomic"

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".render-*.xlsx")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%s: %s: %w", op, path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%s: %s: %w", op, path, err)
	}

	return nil
}
