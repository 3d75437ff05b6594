package genieplot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Constants entering the absolute normalization. The samples are generated
// with the MiniBooNE flux; DistanceRatioSquared moves them to the SBND
// baseline, (450 m / 110 m)^2.
const (
	DistanceRatioSquared = 16.74
	CrossSectionUnit     = 1e-38  // cm^2
	ExposurePOT          = 6.6e20 // protons on target
	ArgonDensity         = 1390   // kg/m^3
	FiducialVolume       = 55     // m^3, nu_mu fiducial volume
	FiducialMass         = ArgonDensity * FiducialVolume
	Avogadro             = 6.022e23
	ArgonMolarMass       = 0.04 // kg/mol

	DefaultFluxBinWidth = 0.05 // GeV
)

// InvalidInputError reports an input the normalization cannot be computed
// from.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FluxSpectrum is a binned neutrino flux with uniform bin width.
type FluxSpectrum struct {
	Contents []float64
	BinWidth float64
}

// Integral returns the bin contents summed and multiplied by the bin width.
func (f FluxSpectrum) Integral() (float64, error) {
	if len(f.Contents) == 0 {
		return 0, invalid("flux", "no bins")
	}
	if !(f.BinWidth > 0) || math.IsInf(f.BinWidth, 0) {
		return 0, invalid("flux", "bin width %v", f.BinWidth)
	}

	for i, v := range f.Contents {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, invalid("flux", "bin %d content %v", i, v)
		}
	}
	return floats.Sum(f.Contents) * f.BinWidth, nil
}

// Point is one vertex of a piecewise-linear curve.
type Point struct {
	X, Y float64
}

// Curve is a piecewise-linear function given by its vertices in order of
// increasing X.
type Curve []Point

// Integral integrates the curve with the trapezoid rule over its full domain.
func (c Curve) Integral() (float64, error) {
	if len(c) < 2 {
		return 0, invalid("curve", "%d points, need at least 2", len(c))
	}

	x := make([]float64, len(c))
	y := make([]float64, len(c))
	for i, p := range c {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return 0, invalid("curve", "point %d is (%v, %v)", i, p.X, p.Y)
		}
		if i > 0 && p.X <= c[i-1].X {
			return 0, invalid("curve", "x not increasing at point %d (%v after %v)", i, p.X, c[i-1].X)
		}
		x[i], y[i] = p.X, p.Y
	}
	return integrate.Trapezoidal(x, y), nil
}

// Normalization returns the factor scaling a sample of eventCount generated
// events to the number of interactions expected at SBND for the configured
// exposure, given the shared flux and the configuration's total CC and NC
// cross sections.
func Normalization(eventCount int, flux FluxSpectrum, cc, nc Curve) (float64, error) {
	if eventCount <= 0 {
		return 0, invalid("event count", "%d", eventCount)
	}

	integratedFlux, err := flux.Integral()
	if err != nil {
		return 0, err
	}
	xsecCC, err := cc.Integral()
	if err != nil {
		return 0, fmt.Errorf("CC cross section: %w", err)
	}
	xsecNC, err := nc.Integral()
	if err != nil {
		return 0, fmt.Errorf("NC cross section: %w", err)
	}

	expected := integratedFlux * DistanceRatioSquared * (xsecCC + xsecNC) * CrossSectionUnit *
		ExposurePOT * FiducialMass * Avogadro / ArgonMolarMass
	return expected / float64(eventCount), nil
}
