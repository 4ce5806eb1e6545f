package train

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// fitLogisticL1 fits a binary logistic regression with an L1 penalty on
// the coefficients (intercept unpenalized) using accelerated proximal
// gradient descent. The solver is fully deterministic: fixed step size,
// fixed iteration order, no randomness.
//
// Minimizes (1/n)*logloss(w, b) + lambda*||w||_1 to tolerance tol on the
// largest coefficient change, capped at maxIter iterations.
func fitLogisticL1(rows [][]float64, y []float64, lambda, tol float64, maxIter int) (coef []float64, intercept float64) {
	n := len(rows)
	if n == 0 {
		return nil, 0
	}
	d := len(rows[0])

	flat := make([]float64, 0, n*d)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	x := mat.NewDense(n, d, flat)

	// Lipschitz bound for the logistic gradient: ||X||_F^2 / (4n),
	// plus the intercept's own 1/4 term.
	var frob float64
	for _, v := range flat {
		frob += v * v
	}
	lip := frob/(4*float64(n)) + 0.25
	step := 1 / lip

	w := make([]float64, d)
	wPrev := make([]float64, d)
	momentum := make([]float64, d)
	var b, bPrev, bMomentum float64
	tPrev := 1.0

	z := mat.NewVecDense(n, nil)
	resid := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)

	for iter := 0; iter < maxIter; iter++ {
		// Gradient at the momentum point
		z.MulVec(x, mat.NewVecDense(d, momentum))
		for i := 0; i < n; i++ {
			p := sigmoid(z.AtVec(i) + bMomentum)
			resid.SetVec(i, p-y[i])
		}
		grad.MulVec(x.T(), resid)

		copy(wPrev, w)
		bPrev = b

		invN := 1 / float64(n)
		for j := 0; j < d; j++ {
			w[j] = softThreshold(momentum[j]-step*grad.AtVec(j)*invN, step*lambda)
		}
		b = bMomentum - step*mat.Sum(resid)*invN

		// FISTA momentum update
		t := (1 + math.Sqrt(1+4*tPrev*tPrev)) / 2
		beta := (tPrev - 1) / t
		for j := 0; j < d; j++ {
			momentum[j] = w[j] + beta*(w[j]-wPrev[j])
		}
		bMomentum = b + beta*(b-bPrev)
		tPrev = t

		delta := math.Abs(b - bPrev)
		for j := 0; j < d; j++ {
			if ch := math.Abs(w[j] - wPrev[j]); ch > delta {
				delta = ch
			}
		}
		if delta < tol {
			break
		}
	}

	return w, b
}

// softThreshold is the proximal operator of the L1 norm
func softThreshold(v, threshold float64) float64 {
	switch {
	case v > threshold:
		return v - threshold
	case v < -threshold:
		return v + threshold
	default:
		return 0
	}
}

// sigmoid is the numerically guarded logistic function
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// predictProbs returns the positive-class probability for every row
func predictProbs(rows [][]float64, coef []float64, intercept float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = sigmoid(floats.Dot(row, coef) + intercept)
	}
	return out
}
