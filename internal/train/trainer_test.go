package train

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"scorecard/domain/core"
	"scorecard/domain/table"
	"scorecard/internal/prepare"
	"scorecard/internal/testkit"
)

func campaignPrepared(t *testing.T) *table.Prepared {
	t.Helper()
	gen := testkit.NewCampaignDataGenerator(testkit.DefaultCampaignConfig())
	raw := gen.Generate()

	prep, err := prepare.Transform(raw, gen.Config(), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to prepare campaign data: %v", err)
	}
	return prep
}

func TestFitOnCampaignData(t *testing.T) {
	prep := campaignPrepared(t)

	model, metrics, err := Fit(context.Background(), prep, zerolog.Nop())
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	if len(model.Coefficients) != len(model.FeatureNames) {
		t.Fatalf("coefficient count %d does not match %d features", len(model.Coefficients), len(model.FeatureNames))
	}
	if len(model.ScalerMeans) != len(model.FeatureNames) || len(model.ScalerScales) != len(model.FeatureNames) {
		t.Fatal("scaler statistics must cover every feature")
	}

	if metrics.BaselineRate <= 0 || metrics.BaselineRate >= 1 {
		t.Errorf("baseline rate %v outside (0,1)", metrics.BaselineRate)
	}
	// planted signal: income up, account age down, east region, gold tier
	if metrics.AUCScore < 0.6 {
		t.Errorf("held-out AUC %v below 0.6 despite planted signal", metrics.AUCScore)
	}
	if metrics.CrossValAUC < 0.6 {
		t.Errorf("cross-validated AUC %v below 0.6 despite planted signal", metrics.CrossValAUC)
	}
	if metrics.CrossValAUCVariance < 0 {
		t.Errorf("variance cannot be negative, got %v", metrics.CrossValAUCVariance)
	}

	probs := model.Probabilities(prep.FeatureMatrix())
	if len(probs) != prep.Frame.NumRows() {
		t.Fatalf("expected %d probabilities, got %d", prep.Frame.NumRows(), len(probs))
	}
	for i, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability %v out of range at row %d", p, i)
		}
	}
}

func TestFitReproducible(t *testing.T) {
	prep := campaignPrepared(t)

	model1, metrics1, err := Fit(context.Background(), prep, zerolog.Nop())
	if err != nil {
		t.Fatalf("first fit failed: %v", err)
	}
	model2, metrics2, err := Fit(context.Background(), prep, zerolog.Nop())
	if err != nil {
		t.Fatalf("second fit failed: %v", err)
	}

	if !reflect.DeepEqual(model1.Coefficients, model2.Coefficients) {
		t.Error("coefficients differ between identical runs")
	}
	if model1.Intercept != model2.Intercept {
		t.Error("intercepts differ between identical runs")
	}
	if metrics1 != metrics2 {
		t.Errorf("metrics differ between identical runs: %+v vs %+v", metrics1, metrics2)
	}
}

func TestFitRejectsSmallDatasets(t *testing.T) {
	f := table.NewFrame(MinTrainingRows - 1)
	target := make([]float64, MinTrainingRows-1)
	feature := make([]float64, MinTrainingRows-1)
	for i := range target {
		target[i] = float64(i % 2)
		feature[i] = float64(i)
	}
	f.AddColumn("responded", target)
	f.AddColumn("x", feature)
	prep := &table.Prepared{Frame: f, Target: "responded"}

	_, _, err := Fit(context.Background(), prep, zerolog.Nop())
	if !core.IsTrainingError(err) {
		t.Errorf("expected training error for %d rows, got %v", MinTrainingRows-1, err)
	}
}

func TestFitRejectsSingleClass(t *testing.T) {
	n := MinTrainingRows
	f := table.NewFrame(n)
	target := make([]float64, n)
	feature := make([]float64, n)
	for i := range feature {
		feature[i] = float64(i)
	}
	f.AddColumn("responded", target)
	f.AddColumn("x", feature)
	prep := &table.Prepared{Frame: f, Target: "responded"}

	_, _, err := Fit(context.Background(), prep, zerolog.Nop())
	if !core.IsTrainingError(err) {
		t.Errorf("expected training error for single-class target, got %v", err)
	}
}
