package prepare

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"scorecard/domain/core"
	"scorecard/domain/table"
	"scorecard/domain/variable"
)

// MissingCategory is the sentinel substituted for missing categorical
// cells before any mapping, so missingness itself becomes a category.
const MissingCategory = "MISSING"

// UnrankedValue is the rank assigned to ordered-categorical values absent
// from the declared value order.
const UnrankedValue = -1.0

// Transform converts a raw table plus variable configuration into a fully
// numeric, gap-free prepared dataset with a binarized target. Column
// order is target, numerical variables in config order, then generated
// categorical columns in config order (ranks for ordered variables,
// sorted indicator columns for unordered ones).
func Transform(raw *table.Raw, cfg *variable.AnalysisConfig, log zerolog.Logger) (*table.Prepared, error) {
	n := raw.NumRows()
	frame := table.NewFrame(n)

	log.Debug().Int("rows", n).Int("columns", raw.NumCols()).Msg("starting data preparation")

	target, err := transformTarget(raw, cfg.TargetVariable)
	if err != nil {
		return nil, err
	}
	if err := frame.AddColumn(cfg.TargetVariable, target); err != nil {
		return nil, core.NewDataPreparationError(cfg.TargetVariable, err)
	}

	for _, name := range cfg.NumericalVariables {
		spec := cfg.VariableDetails[name]
		col, err := transformNumerical(raw, name, spec)
		if err != nil {
			return nil, err
		}
		if err := frame.AddColumn(name, col); err != nil {
			return nil, core.NewDataPreparationError(name, err)
		}
		log.Debug().Str("column", name).Str("direction", string(spec.Direction)).Msg("numerical variable scaled")
	}

	// Indicator columns are collected per variable and appended once,
	// keeping ordering guarantees explicit.
	for _, name := range cfg.CategoricalVariables {
		spec := cfg.VariableDetails[name]
		cols, err := transformCategorical(raw, name, spec)
		if err != nil {
			return nil, err
		}
		for _, c := range cols {
			if err := frame.AddColumn(c.Name, c.Values); err != nil {
				return nil, core.NewDataPreparationError(name, err)
			}
		}
		log.Debug().Str("column", name).Int("generated", len(cols)).Bool("ordered", spec.Ordered).Msg("categorical variable encoded")
	}

	if frame.NumCols() < 2 {
		return nil, core.NewDataPreparationError(cfg.TargetVariable, fmt.Errorf("no feature columns were generated"))
	}

	log.Debug().Int("columns", frame.NumCols()).Msg("data preparation complete")
	return &table.Prepared{Frame: frame, Target: cfg.TargetVariable}, nil
}

// transformCategorical encodes one categorical variable: rank mapping for
// ordered variables, one indicator column per observed category otherwise.
func transformCategorical(raw *table.Raw, name string, spec variable.Spec) ([]table.Column, error) {
	values, ok := raw.Column(name)
	if !ok {
		return nil, core.NewDataPreparationError(name, fmt.Errorf("column not found in dataset"))
	}

	cleaned := make([]string, len(values))
	for i, v := range values {
		if table.IsMissingCell(v) {
			cleaned[i] = MissingCategory
		} else {
			cleaned[i] = strings.TrimSpace(v)
		}
	}

	if spec.Ordered {
		rank := make(map[string]float64, len(spec.ValueOrder))
		for i, v := range spec.ValueOrder {
			rank[v] = float64(i)
		}
		out := make([]float64, len(cleaned))
		for i, v := range cleaned {
			if r, ok := rank[v]; ok {
				out[i] = r
			} else {
				out[i] = UnrankedValue
			}
		}
		return []table.Column{{Name: name, Values: out}}, nil
	}

	distinct := make(map[string]bool)
	for _, v := range cleaned {
		distinct[v] = true
	}
	categories := make([]string, 0, len(distinct))
	for v := range distinct {
		categories = append(categories, v)
	}
	sort.Strings(categories)

	cols := make([]table.Column, len(categories))
	for j, cat := range categories {
		indicator := make([]float64, len(cleaned))
		for i, v := range cleaned {
			if v == cat {
				indicator[i] = 1
			}
		}
		cols[j] = table.Column{Name: fmt.Sprintf("%s_%s", name, cat), Values: indicator}
	}
	return cols, nil
}

// transformNumerical parses, inverts, imputes and scales one numerical
// variable into [0,1]. Degenerate constant columns keep their value and
// are caught by the validator.
func transformNumerical(raw *table.Raw, name string, spec variable.Spec) ([]float64, error) {
	values, ok := raw.Column(name)
	if !ok {
		return nil, core.NewDataPreparationError(name, fmt.Errorf("column not found in dataset"))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = parseNumeric(v)
	}

	if spec.Direction == variable.LowerIsBetter {
		max := math.Inf(-1)
		for _, v := range out {
			if !table.IsMissing(v) && v > max {
				max = v
			}
		}
		if !math.IsInf(max, -1) {
			for i, v := range out {
				if !table.IsMissing(v) {
					out[i] = max - v
				}
			}
		}
	}

	present := make([]float64, 0, len(out))
	for _, v := range out {
		if !table.IsMissing(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil, core.NewDataPreparationError(name, fmt.Errorf("no parseable numeric values"))
	}
	median, err := stats.Median(present)
	if err != nil {
		return nil, core.NewDataPreparationError(name, err)
	}
	for i, v := range out {
		if table.IsMissing(v) {
			out[i] = median
		}
	}

	min, max := out[0], out[0]
	for _, v := range out[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min != max {
		span := max - min
		for i, v := range out {
			out[i] = (v - min) / span
		}
	}
	return out, nil
}

// transformTarget binarizes the target column. At most two distinct
// observed values are allowed; string targets map through the truthy set,
// numeric targets must already be 0/1.
func transformTarget(raw *table.Raw, name string) ([]float64, error) {
	values, ok := raw.Column(name)
	if !ok {
		return nil, core.NewDataPreparationError(name, fmt.Errorf("column not found in dataset"))
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		if !table.IsMissingCell(v) {
			distinct[strings.TrimSpace(v)] = true
		}
	}
	if len(distinct) > 2 {
		observed := make([]string, 0, len(distinct))
		for v := range distinct {
			observed = append(observed, v)
		}
		sort.Strings(observed)
		return nil, core.NewDataPreparationError(name, fmt.Errorf("target variable must be binary, found values: %s", strings.Join(observed, ", ")))
	}

	allNumeric := true
	for v := range distinct {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allNumeric = false
			break
		}
	}

	out := make([]float64, len(values))
	if allNumeric {
		for i, v := range values {
			if table.IsMissingCell(v) {
				out[i] = math.NaN()
				continue
			}
			parsed, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if parsed != 0 && parsed != 1 {
				return nil, core.NewDataPreparationError(name, fmt.Errorf("target values must be binary 0/1, found %v", parsed))
			}
			out[i] = parsed
		}
		return out, nil
	}

	for i, v := range values {
		if isTruthy(v) {
			out[i] = 1
		}
	}
	return out, nil
}

// isTruthy implements the case-insensitive positive-class membership test
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "t":
		return true
	}
	return false
}

// parseNumeric strips everything except digits, decimal point and minus
// sign, then parses. Unparseable values become missing, not errors.
func parseNumeric(v string) float64 {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return math.NaN()
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return parsed
}
