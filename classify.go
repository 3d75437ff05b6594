package genieplot

import (
	"fmt"
	"math"
)

// Channel is the top-level interaction type.
type Channel int

const (
	CC Channel = iota
	NC
)

// Channels lists the channels in table order.
var Channels = [...]Channel{CC, NC}

func (c Channel) String() string {
	switch c {
	case CC:
		return "CC"
	case NC:
		return "NC"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Title is the channel name as printed in table headers.
func (c Channel) Title() string {
	if c == NC {
		return "Neutral Current"
	}
	return "Charged Current"
}

// FinalState is a hadronic final-state bucket within a channel.
type FinalState int

const (
	ZeroPi FinalState = iota
	OnePiPlus
	OnePiMinus
	OnePi0
	TwoPiPlus
	TwoPiMinus
	TwoPi0
	PiPlusPiMinus
	PiPlusPi0
	PiMinusPi0
	ThreeOrMorePi
	Coherent

	NumFinalStates
)

var finalStateNames = [NumFinalStates]string{
	"0pi", "1pi+", "1pi-", "1pi0", "2pi+", "2pi-", "2pi0",
	"pi+pi-", "pi+pi0", "pi-pi0", ">3pi", "coh",
}

var finalStateLabels = [NumFinalStates]string{
	`0 \( \pi \)`,
	`1 \( \pi^+ \)`,
	`1 \( \pi^- \)`,
	`1 \( \pi^0 \)`,
	`2 \( \pi^+ \)`,
	`2 \( \pi^- \)`,
	`2 \( \pi^0 \)`,
	`\( \pi^+ \pi^- \)`,
	`\( \pi^+ \pi^0 \)`,
	`\( \pi^- \pi^0 \)`,
	`\( > 3 \pi \)`,
	`Coherent`,
}

func (s FinalState) String() string {
	if s < 0 || s >= NumFinalStates {
		return fmt.Sprintf("FinalState(%d)", int(s))
	}
	return finalStateNames[s]
}

// Label is the LaTeX row label of the final state.
func (s FinalState) Label() string {
	if s < 0 || s >= NumFinalStates {
		return s.String()
	}
	return finalStateLabels[s]
}

// pionState maps a pion multiplicity triple onto its exclusive bucket. The
// second return value is false for negative multiplicities.
func pionState(piPlus, piMinus, pi0 int) (FinalState, bool) {
	if piPlus < 0 || piMinus < 0 || pi0 < 0 {
		return 0, false
	}
	if piPlus+piMinus+pi0 >= 3 {
		return ThreeOrMorePi, true
	}

	switch [3]int{piPlus, piMinus, pi0} {
	case [3]int{0, 0, 0}:
		return ZeroPi, true
	case [3]int{1, 0, 0}:
		return OnePiPlus, true
	case [3]int{0, 1, 0}:
		return OnePiMinus, true
	case [3]int{0, 0, 1}:
		return OnePi0, true
	case [3]int{2, 0, 0}:
		return TwoPiPlus, true
	case [3]int{0, 2, 0}:
		return TwoPiMinus, true
	case [3]int{0, 0, 2}:
		return TwoPi0, true
	case [3]int{1, 1, 0}:
		return PiPlusPiMinus, true
	case [3]int{1, 0, 1}:
		return PiPlusPi0, true
	default: // {0, 1, 1}, the only triple left with a sum below 3
		return PiMinusPi0, true
	}
}

// BucketCounts holds one count per final-state bucket.
type BucketCounts [NumFinalStates]int

// Classification is the final-state breakdown of one sample.
//
// The pion buckets partition the events of a channel. The Coherent bucket is
// filled in addition to them, so coherent events appear twice: once under
// their pion multiplicity and once under Coherent. CoherentOverlap records
// how many events that applies to.
type Classification struct {
	Scale           float64
	Raw             [2]BucketCounts
	CoherentOverlap [2]int
	Unclassified    int
}

// Classify buckets every event of the sample by channel and final state.
// scale is the configuration's normalization and only affects Scaled.
// Events with neither channel flag, or with a negative pion multiplicity,
// are counted as Unclassified; the latter still enter Coherent.
func Classify(events []Event, scale float64) Classification {
	c := Classification{Scale: scale}
	for i := range events {
		e := &events[i]

		var ch Channel
		switch {
		case e.ChargedCurrent:
			ch = CC
		case e.NeutralCurrent:
			ch = NC
		default:
			c.Unclassified++
			continue
		}

		if e.Coherent {
			c.Raw[ch][Coherent]++
		}

		state, ok := pionState(e.NPiPlus, e.NPiMinus, e.NPi0)
		if !ok {
			c.Unclassified++
			continue
		}
		c.Raw[ch][state]++
		if e.Coherent {
			c.CoherentOverlap[ch]++
		}
	}
	return c
}

// Count returns the raw Monte Carlo count of a bucket.
func (c *Classification) Count(ch Channel, s FinalState) int {
	return c.Raw[ch][s]
}

// Scaled returns the normalized prediction of a bucket, floor(raw * scale).
func (c *Classification) Scaled(ch Channel, s FinalState) float64 {
	return ScaleCount(c.Raw[ch][s], c.Scale)
}

// ScaledCounts returns the normalized prediction of every bucket of a channel.
func (c *Classification) ScaledCounts(ch Channel) [NumFinalStates]float64 {
	var out [NumFinalStates]float64
	for s := range out {
		out[s] = c.Scaled(ch, FinalState(s))
	}
	return out
}

// RawCounts returns the raw counts of a channel as floats, for tabulation.
func (c *Classification) RawCounts(ch Channel) [NumFinalStates]float64 {
	var out [NumFinalStates]float64
	for s, n := range c.Raw[ch] {
		out[s] = float64(n)
	}
	return out
}

// PionTotal is the number of events of a channel, each counted once.
func (c *Classification) PionTotal(ch Channel) int {
	total := 0
	for s := ZeroPi; s < Coherent; s++ {
		total += c.Raw[ch][s]
	}
	return total
}

// Total is the sum of every bucket of a channel, Coherent included, so
// coherent events count twice.
func (c *Classification) Total(ch Channel) int {
	total := 0
	for _, n := range c.Raw[ch] {
		total += n
	}
	return total
}

// Counts returns the 24 raw bucket counts keyed like "CC 1pi+".
func (c *Classification) Counts() map[string]int {
	m := make(map[string]int, 2*int(NumFinalStates))
	for _, ch := range Channels {
		for s := FinalState(0); s < NumFinalStates; s++ {
			m[BucketName(ch, s)] = c.Raw[ch][s]
		}
	}
	return m
}

// BucketName is the map key of a bucket.
func BucketName(ch Channel, s FinalState) string {
	return ch.String() + " " + s.String()
}

// ScaleCount is floor(raw * scale).
func ScaleCount(raw int, scale float64) float64 {
	return math.Floor(float64(raw) * scale)
}
