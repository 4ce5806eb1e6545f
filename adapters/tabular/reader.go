package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"scorecard/domain/table"
	"scorecard/ports"
)

// MinUploadRows is the structural minimum enforced at read time, the
// same floor the trainer requires later.
const MinUploadRows = 100

// FileReader loads raw tabular data from CSV or Excel files. The
// analysis source identifier is the file path.
type FileReader struct {
	checkStructure bool
}

var _ ports.DataReader = (*FileReader)(nil)

// NewFileReader creates a reader that applies the upload-time structural
// checks (minimum rows, minimum columns, no empty columns).
func NewFileReader() *FileReader {
	return &FileReader{checkStructure: true}
}

// NewUncheckedFileReader creates a reader without structural checks,
// for tooling that inspects arbitrary tables.
func NewUncheckedFileReader() *FileReader {
	return &FileReader{}
}

// Read loads the file into a raw column-oriented table
func (r *FileReader) Read(ctx context.Context, sourceIdentifier string) (*table.Raw, error) {
	if _, err := os.Stat(sourceIdentifier); os.IsNotExist(err) {
		return nil, fmt.Errorf("data file not found: %s", sourceIdentifier)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(sourceIdentifier)) {
	case ".csv":
		rows, err = readCSV(sourceIdentifier)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(sourceIdentifier)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(sourceIdentifier))
	}
	if err != nil {
		return nil, err
	}

	raw, err := toRaw(rows)
	if err != nil {
		return nil, err
	}
	if r.checkStructure {
		if err := raw.ValidateStructure(MinUploadRows); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells stay empty
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// toRaw pivots header+rows into the column-oriented raw table. Short rows
// are padded with empty cells so every column has the full row count.
func toRaw(rows [][]string) (*table.Raw, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}
	header := rows[0]
	data := rows[1:]

	raw := table.NewRaw()
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		values := make([]string, len(data))
		for i, row := range data {
			if j < len(row) {
				values[i] = row[j]
			}
		}
		if err := raw.AddColumn(name, values); err != nil {
			return nil, fmt.Errorf("failed to build column %q: %w", name, err)
		}
	}
	return raw, nil
}
