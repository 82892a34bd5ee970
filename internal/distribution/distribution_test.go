package distribution_test

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/statloom-cli/internal/distribution"
	"github.com/KaramelBytes/statloom-cli/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := distribution.ParseKind(" Poisson ")
	require.NoError(t, err)
	assert.Equal(t, distribution.Poisson, k)

	_, err = distribution.ParseKind("gamma")
	assert.Error(t, err)
}

func TestStandardNormalCurve(t *testing.T) {
	pts, err := distribution.Curve(distribution.Normal, distribution.DefaultParams(distribution.Normal))
	require.NoError(t, err)
	require.Len(t, pts, 101)
	assert.InDelta(t, -5, pts[0].X, 1e-12)
	assert.InDelta(t, 5, pts[100].X, 1e-12)
	assert.InDelta(t, -4.9, pts[1].X, 1e-12)
	assert.InDelta(t, 0, pts[50].X, 1e-12)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), pts[50].Y, 1e-9)
	assert.InDelta(t, pts[10].Y, pts[90].Y, 1e-12)
}

func TestDiscreteCurvesSumToOne(t *testing.T) {
	pts, err := distribution.Curve(distribution.Binomial, distribution.Params{N: 8, P: 0.3})
	require.NoError(t, err)
	require.Len(t, pts, 9)
	var sum float64
	for _, p := range pts {
		sum += p.Y
	}
	assert.InDelta(t, 1, sum, 1e-9)

	pts, err = distribution.Curve(distribution.Poisson, distribution.Params{Lambda: 2})
	require.NoError(t, err)
	require.Len(t, pts, 11)
	assert.InDelta(t, math.Exp(-2), pts[0].Y, 1e-12)
	assert.InDelta(t, 2*math.Exp(-2), pts[1].Y, 1e-12)
}

func TestUniformCurve(t *testing.T) {
	pts, err := distribution.Curve(distribution.Uniform, distribution.Params{Min: 2, Max: 4})
	require.NoError(t, err)
	require.Len(t, pts, 101)
	for _, p := range pts {
		assert.InDelta(t, 0.5, p.Y, 1e-12)
	}
}

func TestInvalidParams(t *testing.T) {
	cases := []struct {
		kind distribution.Kind
		p    distribution.Params
	}{
		{distribution.Normal, distribution.Params{StdDev: 0}},
		{distribution.Poisson, distribution.Params{Lambda: -1}},
		{distribution.Binomial, distribution.Params{N: 0, P: 0.5}},
		{distribution.Binomial, distribution.Params{N: 5, P: 1.5}},
		{distribution.Binomial, distribution.Params{N: 1 << 40, P: 0.5}},
		{distribution.Binomial, distribution.Params{N: distribution.MaxDiscretePoints + 1, P: 0.5}},
		{distribution.Poisson, distribution.Params{Lambda: 1e300}},
		{distribution.Poisson, distribution.Params{Lambda: 1e6}},
		{distribution.Uniform, distribution.Params{Min: 3, Max: 3}},
		{distribution.Kind("gamma"), distribution.Params{}},
	}
	for _, tc := range cases {
		_, err := distribution.Curve(tc.kind, tc.p)
		assert.True(t, errors.Is(err, distribution.ErrInvalidParams), "%s %+v", tc.kind, tc.p)
	}
}

func TestDiscreteGridAtLimit(t *testing.T) {
	pts, err := distribution.Curve(distribution.Binomial, distribution.Params{N: distribution.MaxDiscretePoints, P: 0.5})
	require.NoError(t, err)
	assert.Len(t, pts, distribution.MaxDiscretePoints+1)
}

func TestMoments(t *testing.T) {
	m, v, err := distribution.Moments(distribution.Binomial, distribution.Params{N: 10, P: 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 5, m, 1e-12)
	assert.InDelta(t, 2.5, v, 1e-12)

	_, _, err = distribution.Moments(distribution.Poisson, distribution.Params{})
	assert.ErrorIs(t, err, distribution.ErrInvalidParams)
}

func TestFitNormal(t *testing.T) {
	p, err := distribution.FitNormal([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 3, p.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2), p.StdDev, 1e-12)

	_, err = distribution.FitNormal(nil)
	assert.ErrorIs(t, err, stats.ErrEmptyInput)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "binomial(n=10, p=0.5)", distribution.DefaultParams(distribution.Binomial).Label(distribution.Binomial))
	assert.Equal(t, "normal(μ=0, σ=1)", distribution.DefaultParams(distribution.Normal).Label(distribution.Normal))
}
