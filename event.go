package genieplot

// PDG codes of the final-state particles the analysis looks at.
const (
	PDGElectron = 11
	PDGMuon     = 13
	PDGNuMu     = 14
	PDGPi0      = 111
	PDGPiPlus   = 211
	PDGPiMinus  = -211
	PDGProton   = 2212
	PDGNeutron  = 2112
)

// Hadron is one final-state hadron of an event, after intranuclear
// rescattering.
type Hadron struct {
	PDG      int
	Momentum float64
	CosTheta float64
}

// Event is one simulated neutrino interaction as written to a GENIE summary
// tree. Events are read once and never modified.
type Event struct {
	ChargedCurrent bool
	NeutralCurrent bool
	Coherent       bool

	NPiPlus  int
	NPiMinus int
	NPi0     int
	NProton  int
	NNeutron int

	LeptonPDG      int
	LeptonEnergy   float64
	LeptonMomentum float64
	LeptonCosTheta float64

	NeutrinoEnergy float64 // generator truth
	Q2             float64
	SumKE          float64 // summed kinetic energy of final-state hadrons

	Hadrons []Hadron
}

// NPions returns the total final-state pion multiplicity.
func (e *Event) NPions() int {
	return e.NPiPlus + e.NPiMinus + e.NPi0
}

// NNucleons returns the final-state nucleon multiplicity.
func (e *Event) NNucleons() int {
	return e.NProton + e.NNeutron
}
