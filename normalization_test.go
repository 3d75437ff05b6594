package genieplot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatFlux(n int, content float64) FluxSpectrum {
	f := FluxSpectrum{Contents: make([]float64, n), BinWidth: DefaultFluxBinWidth}
	for i := range f.Contents {
		f.Contents[i] = content
	}
	return f
}

func flatCurve(y float64) Curve {
	return Curve{{X: 0, Y: y}, {X: 0.5, Y: y}, {X: 1, Y: y}}
}

func TestFluxIntegral(t *testing.T) {
	got, err := flatFlux(10, 100).Integral()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-12)
}

func TestCurveIntegral(t *testing.T) {
	got, err := flatCurve(2).Integral()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)

	// triangle
	got, err = Curve{{0, 0}, {1, 2}, {2, 0}}.Integral()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)

	// uneven spacing: 0.5*(1+3)*0.5 + 0.5*(3+2)*2
	got, err = Curve{{0, 1}, {0.5, 3}, {2.5, 2}}.Integral()
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-12)

	_, err = Curve{{0, 1}, {1, 1}, {1, 2}}.Integral()
	var inputErr *InvalidInputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestNormalization(t *testing.T) {
	got, err := Normalization(1000000, flatFlux(10, 100), flatCurve(2), flatCurve(2))
	require.NoError(t, err)

	want := 50.0 * 16.74 * 4.0 * 1e-38 * 6.6e20 * (1390 * 55) * 6.022e23 / 0.04 / 1e6
	assert.InEpsilon(t, want, got, 1e-12)
	assert.Greater(t, got, 0.0)
}

func TestNormalizationLinearInFlux(t *testing.T) {
	base, err := Normalization(1000, flatFlux(10, 100), flatCurve(2), flatCurve(3))
	require.NoError(t, err)

	for _, k := range []float64{0.5, 2, 7.25} {
		scaled, err := Normalization(1000, flatFlux(10, 100*k), flatCurve(2), flatCurve(3))
		require.NoError(t, err)
		assert.InEpsilon(t, k*base, scaled, 1e-12, "factor %v", k)
	}
}

func TestNormalizationInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		count int
		flux  FluxSpectrum
		cc    Curve
	}{
		{"zero events", 0, flatFlux(10, 100), flatCurve(2)},
		{"negative events", -5, flatFlux(10, 100), flatCurve(2)},
		{"empty flux", 100, FluxSpectrum{BinWidth: 0.05}, flatCurve(2)},
		{"zero bin width", 100, FluxSpectrum{Contents: []float64{1}}, flatCurve(2)},
		{"single point curve", 100, flatFlux(10, 100), Curve{{0, 1}}},
		{"empty curve", 100, flatFlux(10, 100), nil},
		{"zero width domain", 100, flatFlux(10, 100), Curve{{1, 1}, {1, 2}}},
		{"decreasing x", 100, flatFlux(10, 100), Curve{{0, 1}, {2, 1}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalization(tt.count, tt.flux, tt.cc, flatCurve(2))
			var invalidErr *InvalidInputError
			assert.True(t, errors.As(err, &invalidErr), "got %v", err)
		})
	}
}
