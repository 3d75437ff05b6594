package genieplot

// ParticleCounts tallies events by the final-state particles they contain.
// The nucleon and pion entries count events with exactly one such particle.
type ParticleCounts struct {
	Muons          int
	MuonNeutrinos  int
	Electrons      int
	OneProton      int
	OneNeutron     int
	OneChargedPion int
	OnePi0         int
}

// CountParticles fills ParticleCounts from a sample.
func CountParticles(events []Event) ParticleCounts {
	var n ParticleCounts
	for i := range events {
		e := &events[i]

		switch e.LeptonPDG {
		case PDGMuon:
			n.Muons++
		case PDGNuMu:
			n.MuonNeutrinos++
		case PDGElectron:
			n.Electrons++
		}

		if e.NProton == 1 {
			n.OneProton++
		}
		if e.NNeutron == 1 {
			n.OneNeutron++
		}
		if e.NPiPlus == 1 || e.NPiMinus == 1 {
			n.OneChargedPion++
		}
		if e.NPi0 == 1 {
			n.OnePi0++
		}
	}
	return n
}

// ParticleRow is one labelled entry of ParticleCounts.
type ParticleRow struct {
	Label string
	Count int
}

// Rows returns the counts labelled in table order.
func (n ParticleCounts) Rows() []ParticleRow {
	return []ParticleRow{
		{"Protons", n.OneProton},
		{"Neutrons", n.OneNeutron},
		{"Muons", n.Muons},
		{"Muon Neutrinos", n.MuonNeutrinos},
		{"Charged Pions", n.OneChargedPion},
		{"Neutral Pions", n.OnePi0},
		{"Electrons", n.Electrons},
	}
}
