package analysis

import (
	"fmt"
	"math"

	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Regress fits y = const + slope*x by ordinary least squares. Only rows where
// both x and y are present are used; the number of dropped rows is reported.
func Regress(t *dataset.Table, x, y string) (domainstats.RegressionResult, error) {
	xc, ok := t.Column(x)
	if !ok {
		return domainstats.RegressionResult{}, core.NewInvalidColumnError(x)
	}
	yc, ok := t.Column(y)
	if !ok {
		return domainstats.RegressionResult{}, core.NewInvalidColumnError(y)
	}

	xs, ys, dropped, err := dataset.PairedFloats(xc, yc)
	if err != nil {
		return domainstats.RegressionResult{}, err
	}

	n := len(xs)
	if n < 3 {
		return domainstats.RegressionResult{}, core.NewInsufficientDataError(
			fmt.Sprintf("regression needs at least 3 complete rows, got %d", n))
	}

	xbar := stat.Mean(xs, nil)
	sxx := stat.Variance(xs, nil) * float64(n-1)
	if sxx == 0 {
		return domainstats.RegressionResult{}, core.NewInsufficientDataError(fmt.Sprintf("%s is constant", x))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	ssr := 0.0
	for i := range xs {
		e := ys[i] - (alpha + beta*xs[i])
		ssr += e * e
	}

	dof := float64(n - 2)
	sigma2 := ssr / dof
	seSlope := math.Sqrt(sigma2 / sxx)
	seConst := math.Sqrt(sigma2 * (1/float64(n) + xbar*xbar/sxx))

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	coef := func(name string, estimate, se float64) domainstats.Coefficient {
		tv := estimate / se
		return domainstats.Coefficient{
			Name:     name,
			Estimate: estimate,
			StdError: se,
			TValue:   tv,
			PValue:   2 * tdist.Survival(math.Abs(tv)),
		}
	}

	fstat := r2 / ((1 - r2) / dof)
	fdist := distuv.F{D1: 1, D2: dof}

	return domainstats.RegressionResult{
		Independent: x,
		Dependent:   y,
		N:           n,
		DroppedRows: dropped,
		Coefficients: []domainstats.Coefficient{
			coef("const", alpha, seConst),
			coef(x, beta, seSlope),
		},
		RSquared:    r2,
		AdjRSquared: 1 - (1-r2)*float64(n-1)/dof,
		FStatistic:  fstat,
		FPValue:     fdist.Survival(fstat),
		ResidualStd: math.Sqrt(sigma2),
	}, nil
}
