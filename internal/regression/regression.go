// Package regression fits ordinary least squares linear models.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Common errors.
var (
	ErrNoObservations    = errors.New("no observations to fit")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Model is a fitted linear model y = Intercept + Coefficients·x.
type Model struct {
	Intercept    float64
	Coefficients []float64
	// Degenerate is set when the fit had fewer observations than
	// parameters or the inputs were collinear. The coefficients are then the
	// minimum-norm least squares solution and not unique.
	Degenerate bool
}

// Fit computes the least squares model for rows of x against y.
//
// Inputs are centered first so the intercept is not penalized, then the
// centered system is solved with an SVD pseudo-inverse. Underdetermined and
// rank-deficient inputs do not fail; they produce the minimum-norm solution
// and a Degenerate model.
func Fit(x [][]float64, y []float64) (*Model, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrNoObservations
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrDimensionMismatch, n, len(y))
	}
	p := len(x[0])
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), p)
		}
	}

	xMean := make([]float64, p)
	var yMean float64
	for i, row := range x {
		for j, v := range row {
			xMean[j] += v
		}
		yMean += y[i]
	}
	for j := range xMean {
		xMean[j] /= float64(n)
	}
	yMean /= float64(n)

	model := &Model{
		Intercept:    yMean,
		Coefficients: make([]float64, p),
		Degenerate:   n < p+1,
	}
	if p == 0 {
		return model, nil
	}

	centered := mat.NewDense(n, p, nil)
	target := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			centered.Set(i, j, v-xMean[j])
		}
		target.SetVec(i, y[i]-yMean)
	}

	beta, rank, err := solveMinNorm(centered, target)
	if err != nil {
		return nil, err
	}
	if rank < p {
		model.Degenerate = true
	}

	copy(model.Coefficients, beta)
	for j, c := range model.Coefficients {
		model.Intercept -= c * xMean[j]
	}
	return model, nil
}

// solveMinNorm returns the minimum-norm solution of a·b = y and the numerical
// rank of a.
func solveMinNorm(a *mat.Dense, y *mat.VecDense) ([]float64, int, error) {
	n, p := a.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, 0, errors.New("singular value decomposition failed")
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Same cutoff numpy uses for lstsq/pinv.
	tol := 0.0
	if len(values) > 0 {
		tol = values[0] * float64(max(n, p)) * epsilon
	}

	beta := make([]float64, p)
	rank := 0
	for k, s := range values {
		if s <= tol || s == 0 {
			continue
		}
		rank++

		// (u_k · y) / s_k
		var proj float64
		for i := 0; i < n; i++ {
			proj += u.At(i, k) * y.AtVec(i)
		}
		proj /= s

		for j := 0; j < p; j++ {
			beta[j] += v.At(j, k) * proj
		}
	}
	return beta, rank, nil
}

var epsilon = math.Nextafter(1, 2) - 1

// Predict evaluates the model for one feature vector.
func (m *Model) Predict(x []float64) float64 {
	y := m.Intercept
	for j, c := range m.Coefficients {
		if j < len(x) {
			y += c * x[j]
		}
	}
	return y
}

// PredictAll evaluates the model for every row of x.
func (m *Model) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}
