package table

import (
	"fmt"
	"math"
)

// Frame is a rectangular numeric table built column by column and never
// mutated in place: new columns are collected and appended once, which
// keeps ordering explicit. Missing cells are NaN.
type Frame struct {
	cols  []Column
	index map[string]int
	nrows int
}

// Column is one named numeric column
type Column struct {
	Name   string
	Values []float64
}

// NewFrame creates an empty frame expecting the given row count
func NewFrame(rows int) *Frame {
	return &Frame{index: make(map[string]int), nrows: rows}
}

// AddColumn appends a named column of exactly the frame's row count
func (f *Frame) AddColumn(name string, values []float64) error {
	if name == "" {
		return fmt.Errorf("column name cannot be empty")
	}
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(values) != f.nrows {
		return fmt.Errorf("column %q has %d rows, frame expects %d", name, len(values), f.nrows)
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, Column{Name: name, Values: values})
	return nil
}

// Column returns the values of a named column
func (f *Frame) Column(name string) ([]float64, bool) {
	idx, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[idx].Values, true
}

// Names returns column names in insertion order
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the row count
func (f *Frame) NumRows() int { return f.nrows }

// NumCols returns the column count
func (f *Frame) NumCols() int { return len(f.cols) }

// IsMissing reports whether a numeric cell is missing
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Prepared is the transformer's output: a gap-free numeric frame with one
// binarized target column and at least one feature column. Both the model
// and the rule evaluator read it; neither mutates it.
type Prepared struct {
	Frame  *Frame
	Target string
}

// TargetValues returns the binarized target column
func (p *Prepared) TargetValues() []float64 {
	vals, _ := p.Frame.Column(p.Target)
	return vals
}

// FeatureNames returns every column name except the target, in frame order
func (p *Prepared) FeatureNames() []string {
	names := make([]string, 0, p.Frame.NumCols()-1)
	for _, n := range p.Frame.Names() {
		if n != p.Target {
			names = append(names, n)
		}
	}
	return names
}

// FeatureMatrix returns the feature columns as a row-major matrix in
// FeatureNames order
func (p *Prepared) FeatureMatrix() [][]float64 {
	names := p.FeatureNames()
	rows := make([][]float64, p.Frame.NumRows())
	cols := make([][]float64, len(names))
	for j, n := range names {
		cols[j], _ = p.Frame.Column(n)
	}
	for i := range rows {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}
	return rows
}
