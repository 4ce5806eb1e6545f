package table

import (
	"math"
	"reflect"
	"testing"
)

func TestFrameAddColumn(t *testing.T) {
	f := NewFrame(3)
	if err := f.AddColumn("a", []float64{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.AddColumn("a", []float64{4, 5, 6}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if err := f.AddColumn("b", []float64{1}); err == nil {
		t.Error("expected error for wrong row count")
	}
	if f.NumRows() != 3 || f.NumCols() != 1 {
		t.Errorf("expected 3x1 frame, got %dx%d", f.NumRows(), f.NumCols())
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing(math.NaN()) {
		t.Error("expected NaN to be missing")
	}
	if IsMissing(0) {
		t.Error("expected 0 to be present")
	}
}

func TestPreparedFeatureOrdering(t *testing.T) {
	f := NewFrame(2)
	f.AddColumn("responded", []float64{1, 0})
	f.AddColumn("income", []float64{0.5, 0.9})
	f.AddColumn("region_east", []float64{1, 0})
	prep := &Prepared{Frame: f, Target: "responded"}

	wantNames := []string{"income", "region_east"}
	if got := prep.FeatureNames(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("expected feature names %v, got %v", wantNames, got)
	}

	wantTarget := []float64{1, 0}
	if got := prep.TargetValues(); !reflect.DeepEqual(got, wantTarget) {
		t.Errorf("expected target %v, got %v", wantTarget, got)
	}

	wantMatrix := [][]float64{{0.5, 1}, {0.9, 0}}
	if got := prep.FeatureMatrix(); !reflect.DeepEqual(got, wantMatrix) {
		t.Errorf("expected matrix %v, got %v", wantMatrix, got)
	}
}
