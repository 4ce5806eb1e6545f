package table

import (
	"fmt"
	"strings"
)

// Raw is a column-oriented table of uncoerced cell values, exactly as read
// from the upload source. Cells keep their original text; missingness is
// decided by IsMissingCell.
type Raw struct {
	cols  []rawColumn
	index map[string]int
	nrows int
}

type rawColumn struct {
	name   string
	values []string
}

// NewRaw creates an empty raw table
func NewRaw() *Raw {
	return &Raw{index: make(map[string]int)}
}

// AddColumn appends a named column. All columns must have the same length.
func (r *Raw) AddColumn(name string, values []string) error {
	if name == "" {
		return fmt.Errorf("column name cannot be empty")
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(r.cols) > 0 && len(values) != r.nrows {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), r.nrows)
	}
	r.index[name] = len(r.cols)
	r.cols = append(r.cols, rawColumn{name: name, values: values})
	r.nrows = len(values)
	return nil
}

// Column returns the values of a named column
func (r *Raw) Column(name string) ([]string, bool) {
	idx, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.cols[idx].values, true
}

// Names returns column names in insertion order
func (r *Raw) Names() []string {
	names := make([]string, len(r.cols))
	for i, c := range r.cols {
		names[i] = c.name
	}
	return names
}

// NumRows returns the row count
func (r *Raw) NumRows() int { return r.nrows }

// NumCols returns the column count
func (r *Raw) NumCols() int { return len(r.cols) }

// IsMissingCell reports whether a raw cell should be treated as missing.
// Upload sources hand us text, so the common textual null markers count.
func IsMissingCell(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "na", "n/a", "null", "nan", "none":
		return true
	}
	return false
}

// ValidateStructure runs the structural checks applied at upload time:
// a minimum row count, at least two columns, and no fully-empty column.
func (r *Raw) ValidateStructure(minRows int) error {
	if r.nrows < minRows {
		return fmt.Errorf("dataset too small: minimum %d rows required, got %d", minRows, r.nrows)
	}
	if len(r.cols) < 2 {
		return fmt.Errorf("not enough variables: minimum 2 columns required (predictors + outcome), got %d", len(r.cols))
	}
	var empty []string
	for _, c := range r.cols {
		allMissing := true
		for _, v := range c.values {
			if !IsMissingCell(v) {
				allMissing = false
				break
			}
		}
		if allMissing {
			empty = append(empty, c.name)
		}
	}
	if len(empty) > 0 {
		return fmt.Errorf("found completely empty columns: %s", strings.Join(empty, ", "))
	}
	return nil
}
