// Package tabular loads header-addressed tabular input files. The input
// format is resolved once per file from its extension; Excel workbooks go
// through excelize and CSV files through encoding/csv, both normalized into
// the same Sheet shape so the pipeline never branches on format.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingInputFile is returned when neither the named file nor its
	// sibling-extension fallback exists.
	ErrMissingInputFile = errors.New("input file not found")

	// ErrUnsupportedFormat is returned for extensions other than .xlsx and
	// .csv.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrMissingColumn is returned when a required column cannot be resolved
	// against the header row.
	ErrMissingColumn = errors.New("required column not found")

	// ErrEmptySheet is returned when the input has no header row.
	ErrEmptySheet = errors.New("input file has no header row")
)

// Sheet is one loaded input table: a header row plus data rows, all cells as
// strings.
type Sheet struct {
	Path   string
	Header []string
	Rows   [][]string
}

// Load reads the table at path. A missing .xlsx falls back to the .csv
// sibling and vice versa before failing with ErrMissingInputFile; the
// original extract is mailed around in either format depending on who
// exported it.
func Load(path string) (*Sheet, error) {
	const op = "tabular.Load"

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".xlsx":
		rows, err = loadExcel(resolved)
	case ".csv":
		rows, err = loadCSV(resolved)
	default:
		return nil, fmt.Errorf("%s: %s: %w", op, resolved, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, resolved, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %s: %w", op, resolved, ErrEmptySheet)
	}

	return &Sheet{
		Path:   resolved,
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}

// resolvePath returns path if it exists, otherwise the sibling-extension
// fallback (xlsx<->csv) if that exists.
func resolvePath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	var sibling string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		sibling = strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	case ".csv":
		sibling = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	default:
		return "", ErrMissingInputFile
	}

	if _, err := os.Stat(sibling); err == nil {
		return sibling, nil
	}

	return "", ErrMissingInputFile
}

func loadExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	return f.GetRows(sheets[0])
}

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	return reader.ReadAll()
}

// Column returns the index of the first header cell matching any of names,
// compared case-insensitively after trimming.
func (s *Sheet) Column(names ...string) (int, bool) {
	for i, h := range s.Header {
		cell := strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if cell == strings.ToLower(name) {
				return i, true
			}
		}
	}
	return 0, false
}

// RequireColumn is Column with an ErrMissingColumn error naming the file and
// column when no header matches.
func (s *Sheet) RequireColumn(names ...string) (int, error) {
	if idx, ok := s.Column(names...); ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%s: column %q: %w", s.Path, names[0], ErrMissingColumn)
}

// Resolve maps a configured column reference to an index: header name first,
// then spreadsheet column letters ("A", "AB") as a positional fallback for
// extracts whose header names are not reliable. A positional reference past
// the sheet's width does not resolve; letting it through would read every
// cell as blank and quietly empty the identity fields it was meant to
// address.
func (s *Sheet) Resolve(ref string) (int, bool) {
	if idx, ok := s.Column(ref); ok {
		return idx, true
	}
	if idx, ok := ColumnIndex(ref); ok && idx < len(s.Header) {
		return idx, true
	}
	return 0, false
}

// Cell returns the cell at idx in row, or "" when the row is short. Excel
// readers drop trailing empty cells, so short rows are routine.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ColumnIndex converts spreadsheet column letters to a zero-based index:
// "A" -> 0, "Z" -> 25, "AB" -> 27. References longer than three letters are
// rejected (Excel stops at XFD), which keeps a misspelled header name from
// being mistaken for a positional reference.
func ColumnIndex(ref string) (int, bool) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" || len(ref) > 3 {
		return 0, false
	}
	n := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1, true
}
