package train

import (
	"gonum.org/v1/gonum/stat"
)

// standardScaler centers to zero mean and unit variance. Statistics come
// from the training split only and are then applied to every split, and
// later to the full population when scoring.
type standardScaler struct {
	means  []float64
	scales []float64
}

// fitScaler computes per-feature mean and standard deviation over rows
func fitScaler(rows [][]float64) *standardScaler {
	if len(rows) == 0 {
		return &standardScaler{}
	}
	d := len(rows[0])
	s := &standardScaler{
		means:  make([]float64, d),
		scales: make([]float64, d),
	}
	col := make([]float64, len(rows))
	for j := 0; j < d; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		s.means[j] = stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 {
			// constant feature on this split, leave it centered only
			sd = 1
		}
		s.scales[j] = sd
	}
	return s
}

// transform returns a scaled copy of rows
func (s *standardScaler) transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.means[j]) / s.scales[j]
		}
		out[i] = scaled
	}
	return out
}
