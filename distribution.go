package genieplot

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Variable extracts the values an event contributes to a histogram. Most
// variables yield one value per event; hadron variables yield one per
// matching final-state hadron.
type Variable func(e *Event, fill func(x float64))

// Scalar wraps a one-value-per-event extractor.
func Scalar(f func(e *Event) float64) Variable {
	return func(e *Event, fill func(float64)) {
		fill(f(e))
	}
}

// HadronVariable yields f(h) for every final-state hadron with the given PDG
// code.
func HadronVariable(pdg int, f func(h Hadron) float64) Variable {
	return func(e *Event, fill func(float64)) {
		for _, h := range e.Hadrons {
			if h.PDG == pdg {
				fill(f(h))
			}
		}
	}
}

var (
	VarQ2             = Scalar(func(e *Event) float64 { return e.Q2 })
	VarNeutrinoEnergy = Scalar(func(e *Event) float64 { return e.NeutrinoEnergy })
	VarMuonCosTheta   = Scalar(func(e *Event) float64 { return e.LeptonCosTheta })
	VarMuonMomentum   = Scalar(func(e *Event) float64 { return e.LeptonMomentum })
	VarNNucleons      = Scalar(func(e *Event) float64 { return float64(e.NNucleons()) })
	VarNProtons       = Scalar(func(e *Event) float64 { return float64(e.NProton) })
	VarNNeutrons      = Scalar(func(e *Event) float64 { return float64(e.NNeutron) })
	VarSumKE          = Scalar(func(e *Event) float64 { return e.SumKE })

	// VarAvgProtonKE is undefined for events without protons; those values
	// are not finite and get dropped by Fill.
	VarAvgProtonKE = Scalar(func(e *Event) float64 { return e.SumKE / float64(e.NProton) })
)

// PionCosTheta yields the angle of every final-state pion of the given kind.
func PionCosTheta(pdg int) Variable {
	return HadronVariable(pdg, func(h Hadron) float64 { return h.CosTheta })
}

// PionMomentum yields the momentum of every final-state pion of the given kind.
func PionMomentum(pdg int) Variable {
	return HadronVariable(pdg, func(h Hadron) float64 { return h.Momentum })
}

// Distribution describes one histogram filled from a topology.
type Distribution struct {
	Name     string // output file stem, e.g. "Q2"
	Title    string
	XLabel   string
	NBins    int
	Min, Max float64
	Topology Topology
	Variable Variable
}

// Fill books a histogram and fills it with every event passing the
// distribution's topology. Non-finite values are skipped.
func (d Distribution) Fill(events []Event) *hbook.H1D {
	h := hbook.NewH1D(d.NBins, d.Min, d.Max)
	fill := func(x float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return
		}
		h.Fill(x, 1)
	}
	for i := range events {
		e := &events[i]
		if d.Topology.Match != nil && !d.Topology.Match(e) {
			continue
		}
		d.Variable(e, fill)
	}
	return h
}

// FillValues books a histogram and fills it with plain values, for
// quantities computed outside the event record.
func (d Distribution) FillValues(values []float64) *hbook.H1D {
	h := hbook.NewH1D(d.NBins, d.Min, d.Max)
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		h.Fill(x, 1)
	}
	return h
}
