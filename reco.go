package genieplot

import (
	"fmt"
	"math"
)

const (
	NucleonMass = 0.93828 // GeV
	MuonMass    = 0.10566 // GeV

	// SingularityEpsilon is the smallest denominator magnitude Reconstruct
	// accepts.
	SingularityEpsilon = 1e-9
)

// Variant selects the numerator of the quasi-elastic energy formula. The
// model and nucleon macros disagreed on it, so the choice is left to the
// caller.
type Variant int

const (
	// WithEnergyFactor uses E - m_mu^2/(2 m_N) as the numerator.
	WithEnergyFactor Variant = iota
	// WithoutEnergyFactor uses 1 - m_mu^2/(2 m_N) as the numerator.
	WithoutEnergyFactor
)

func (v Variant) String() string {
	switch v {
	case WithEnergyFactor:
		return "with-energy-factor"
	case WithoutEnergyFactor:
		return "without-energy-factor"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant parses the String form of a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "with-energy-factor":
		return WithEnergyFactor, nil
	case "without-energy-factor":
		return WithoutEnergyFactor, nil
	}
	return 0, fmt.Errorf("unknown reconstruction variant %q", s)
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// KinematicSingularityError is returned when the lepton kinematics put the
// reconstruction formula on its pole, E - p cos(theta) = m_N.
type KinematicSingularityError struct {
	Energy, Momentum, CosTheta float64
	Denominator                float64
}

func (e *KinematicSingularityError) Error() string {
	return fmt.Sprintf("kinematic singularity: E=%g p=%g cos=%g gives denominator %g",
		e.Energy, e.Momentum, e.CosTheta, e.Denominator)
}

// Reconstruct estimates the neutrino energy from the outgoing lepton under the
// free-nucleon-at-rest approximation. It is only meaningful for events without
// final-state pions. Non-finite kinematics, or a non-finite result, are
// reported as a KinematicSingularityError.
func Reconstruct(energy, momentum, cosTheta float64, variant Variant) (float64, error) {
	denom := 1 - (energy-momentum*cosTheta)/NucleonMass
	singular := func() error {
		return &KinematicSingularityError{
			Energy:      energy,
			Momentum:    momentum,
			CosTheta:    cosTheta,
			Denominator: denom,
		}
	}
	if !isFinite(energy) || !isFinite(momentum) || !isFinite(cosTheta) {
		return 0, singular()
	}
	if math.Abs(denom) < SingularityEpsilon || math.IsNaN(denom) {
		return 0, singular()
	}

	k := energy
	if variant == WithoutEnergyFactor {
		k = 1
	}
	reco := (k - MuonMass*MuonMass/(2*NucleonMass)) / denom
	if !isFinite(reco) {
		return 0, singular()
	}
	return reco, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RecoPoint is one reconstructed energy and its distance from the generated
// neutrino energy.
type RecoPoint struct {
	Energy   float64
	Residual float64
}

// Reconstruction collects the reconstructed energies of the CC0pi and NC0pi
// events of a sample.
type Reconstruction struct {
	Variant  Variant
	Points   [2][]RecoPoint
	Singular [2]int
}

// ReconstructSample applies Reconstruct to every zero-pion CC and NC event.
// Events on the singularity are counted rather than reconstructed.
func ReconstructSample(events []Event, variant Variant) Reconstruction {
	r := Reconstruction{Variant: variant}
	for i := range events {
		e := &events[i]
		if e.NPions() != 0 {
			continue
		}

		var ch Channel
		switch {
		case e.ChargedCurrent:
			ch = CC
		case e.NeutralCurrent:
			ch = NC
		default:
			continue
		}

		energy, err := Reconstruct(e.LeptonEnergy, e.LeptonMomentum, e.LeptonCosTheta, variant)
		if err != nil {
			r.Singular[ch]++
			continue
		}
		r.Points[ch] = append(r.Points[ch], RecoPoint{
			Energy:   energy,
			Residual: math.Abs(energy - e.NeutrinoEnergy),
		})
	}
	return r
}

// Energies returns the reconstructed energies of a channel.
func (r *Reconstruction) Energies(ch Channel) []float64 {
	out := make([]float64, len(r.Points[ch]))
	for i, p := range r.Points[ch] {
		out[i] = p.Energy
	}
	return out
}

// Residuals returns |E_reco - E_nu| for every reconstructed event of a
// channel.
func (r *Reconstruction) Residuals(ch Channel) []float64 {
	out := make([]float64, len(r.Points[ch]))
	for i, p := range r.Points[ch] {
		out[i] = p.Residual
	}
	return out
}
