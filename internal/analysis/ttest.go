package analysis

import (
	"errors"
	"fmt"

	"goexplore/domain/core"
	"goexplore/domain/dataset"
	domainstats "goexplore/domain/stats"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
)

// TTest runs an independent two-sample t-test between columns a and b. Missing
// values are dropped from each column on its own, so the samples may differ in
// size. equalVariance selects Student's pooled test; otherwise Welch's test.
func TTest(t *dataset.Table, a, b string, equalVariance bool) (domainstats.TTestResult, error) {
	xa, err := numericSample(t, a)
	if err != nil {
		return domainstats.TTestResult{}, err
	}
	xb, err := numericSample(t, b)
	if err != nil {
		return domainstats.TTestResult{}, err
	}
	if len(xa) < 2 || len(xb) < 2 {
		return domainstats.TTestResult{}, core.NewInsufficientDataError(
			fmt.Sprintf("t-test needs at least two values per column (%s: %d, %s: %d)", a, len(xa), b, len(xb)))
	}

	sa, sb := &moremath.Sample{Xs: xa}, &moremath.Sample{Xs: xb}
	var res *moremath.TTestResult
	if equalVariance {
		res, err = moremath.TwoSampleTTest(sa, sb, moremath.LocationDiffers)
	} else {
		res, err = moremath.TwoSampleWelchTTest(sa, sb, moremath.LocationDiffers)
	}
	if err != nil {
		if errors.Is(err, moremath.ErrZeroVariance) || errors.Is(err, moremath.ErrSampleSize) {
			return domainstats.TTestResult{}, core.NewInsufficientDataError(err.Error())
		}
		return domainstats.TTestResult{}, fmt.Errorf("t-test failed: %w", err)
	}

	meanA, _ := stats.Mean(xa)
	meanB, _ := stats.Mean(xb)

	return domainstats.TTestResult{
		ColumnA:          a,
		ColumnB:          b,
		NA:               len(xa),
		NB:               len(xb),
		MeanA:            meanA,
		MeanB:            meanB,
		TStatistic:       res.T,
		DegreesOfFreedom: res.DoF,
		PValue:           res.P,
		EqualVariance:    equalVariance,
	}, nil
}

// numericSample returns the present values of a numeric column
func numericSample(t *dataset.Table, name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, core.NewInvalidColumnError(name)
	}
	if c.Kind() == dataset.ColumnCategorical {
		return nil, core.NewNonNumericColumnError(name)
	}
	return c.Floats()
}
