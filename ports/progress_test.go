package ports

import "testing"

func TestProgressFuncNilSafe(t *testing.T) {
	var progress ProgressFunc
	// must not panic
	progress.Report(50, "Training model...")
}

func TestProgressFuncReports(t *testing.T) {
	var gotPercent int
	var gotMessage string
	progress := ProgressFunc(func(percent int, message string) {
		gotPercent = percent
		gotMessage = message
	})

	progress.Report(70, "Calculating scores...")
	if gotPercent != 70 || gotMessage != "Calculating scores..." {
		t.Errorf("unexpected report: %d %q", gotPercent, gotMessage)
	}
}
