package timeseries_test

import (
	"math"
	"testing"

	"github.com/KaramelBytes/statloom-cli/internal/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	got := timeseries.MovingAverage([]float64{1, 2, 3, 4, 5}, 5)
	require.Len(t, got, 5)
	for i := 0; i < 4; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d", i)
	}
	assert.Equal(t, 3.0, got[4])

	got = timeseries.MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.Equal(t, []float64{3, 5, 7}, got[1:])

	got = timeseries.MovingAverage([]float64{1, 2, 3, 4, 5, 6}, 0)
	assert.Equal(t, 4.0, got[5])
}

func TestEMA(t *testing.T) {
	assert.Empty(t, timeseries.EMA(nil, 0.5))

	got := timeseries.EMA([]float64{10, 20, 30}, 0.5)
	assert.Equal(t, []float64{10, 15, 22.5}, got)

	// default alpha depends on series length: 2/(3+1) = 0.5
	assert.Equal(t, 0.5, timeseries.DefaultAlpha(3))
	assert.Equal(t, got, timeseries.EMA([]float64{10, 20, 30}, 0))
}

func TestDifferencing(t *testing.T) {
	values := []float64{3, 7.5, 2, 9.25, 11, -4}
	d := timeseries.Differencing(values)
	require.Len(t, d, len(values)-1)
	var sum float64
	for _, v := range d {
		sum += v
	}
	assert.InDelta(t, values[len(values)-1]-values[0], sum, 1e-9)

	assert.Empty(t, timeseries.Differencing([]float64{1}))
}

func TestAutocorrelation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	// mean 3, population variance 2; lag 1 sum = 2*1 + 1*0 + 0*-1 + -1*-2 = 4
	assert.InDelta(t, 4.0/4/2, timeseries.Autocorrelation(values, 1), 1e-12)
	assert.InDelta(t, 1.0, timeseries.Autocorrelation(values, 0), 1e-12)
	assert.True(t, math.IsNaN(timeseries.Autocorrelation(values, 5)))
	assert.True(t, math.IsNaN(timeseries.Autocorrelation(values, -1)))
	assert.True(t, math.IsNaN(timeseries.Autocorrelation([]float64{2, 2, 2}, 1)))
}

func TestACF(t *testing.T) {
	values := []float64{1, 3, 2, 5, 4, 6, 5, 8}
	acf := timeseries.ACF(values, 20)
	require.Len(t, acf, 7)
	assert.Equal(t, timeseries.Autocorrelation(values, 3), acf[2])
	assert.Empty(t, timeseries.ACF([]float64{1}, 3))
	assert.Len(t, timeseries.ACF(make([]float64, 30), 0), timeseries.DefaultMaxLag)
}

func TestTrendLine(t *testing.T) {
	values := []float64{2, 5, 8, 11}
	assert.Equal(t, []float64{2, 5, 8, 11}, timeseries.TrendLine(values))

	line := timeseries.TrendLine([]float64{4})
	require.Len(t, line, 1)
	assert.True(t, math.IsNaN(line[0]))
}

func TestNaiveForecast(t *testing.T) {
	values := []float64{1, 3, 2, 4}
	out := timeseries.NaiveForecast(values, 6)
	require.Len(t, out, 10)
	assert.Equal(t, values, out[:4])

	fit := timeseries.Trend(values)
	for i := 4; i < 10; i++ {
		j := i % 4
		want := fit.Predict(float64(i)) + values[j] - fit.Predict(float64(j))
		assert.InDelta(t, want, out[i], 1e-12)
	}

	// a perfectly linear series keeps following its line
	lin := timeseries.NaiveForecast([]float64{0, 2, 4}, 2)
	assert.InDelta(t, 6, lin[3], 1e-12)
	assert.InDelta(t, 8, lin[4], 1e-12)

	assert.Empty(t, timeseries.NaiveForecast(nil, 3))
	assert.Len(t, timeseries.NaiveForecast(values, 0), 4)
	assert.Len(t, timeseries.NaiveForecast(values, -1), 4+timeseries.DefaultHorizon)
}

func TestIsStationary(t *testing.T) {
	s := timeseries.IsStationary([]float64{1, 2, 1, 2})
	assert.True(t, s.Stationary)
	assert.Equal(t, 1.5, s.FirstMean)

	s = timeseries.IsStationary([]float64{1, 2, 3, 4, 5})
	assert.False(t, s.Stationary)
	assert.Equal(t, 1.5, s.FirstMean)
	assert.Equal(t, 4.0, s.SecondMean)

	assert.False(t, timeseries.IsStationary([]float64{7}).Stationary)
}

func TestFitError(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	ma := timeseries.MovingAverage(values, 3)
	e := timeseries.FitError(values, ma)
	assert.Equal(t, 4, e.N)
	assert.InDelta(t, 1.0, e.MAE, 1e-12)
	assert.InDelta(t, 1.0, e.MSE, 1e-12)

	e = timeseries.FitError(nil, nil)
	assert.True(t, math.IsNaN(e.MAE))
}
