package genieplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ccEvent(pip, pim, pi0 int) Event {
	return Event{ChargedCurrent: true, NPiPlus: pip, NPiMinus: pim, NPi0: pi0}
}

func ncEvent(pip, pim, pi0 int) Event {
	return Event{NeutralCurrent: true, NPiPlus: pip, NPiMinus: pim, NPi0: pi0}
}

func TestClassifySinglePiPlus(t *testing.T) {
	c := Classify([]Event{ccEvent(1, 0, 0)}, 1)

	for s := FinalState(0); s < NumFinalStates; s++ {
		want := 0
		if s == OnePiPlus {
			want = 1
		}
		assert.Equal(t, want, c.Count(CC, s), "CC %v", s)
		assert.Equal(t, 0, c.Count(NC, s), "NC %v", s)
	}
	assert.Equal(t, 1, c.Counts()["CC 1pi+"])
}

func TestPionState(t *testing.T) {
	tests := []struct {
		pip, pim, pi0 int
		want          FinalState
	}{
		{0, 0, 0, ZeroPi},
		{1, 0, 0, OnePiPlus},
		{0, 1, 0, OnePiMinus},
		{0, 0, 1, OnePi0},
		{2, 0, 0, TwoPiPlus},
		{0, 2, 0, TwoPiMinus},
		{0, 0, 2, TwoPi0},
		{1, 1, 0, PiPlusPiMinus},
		{1, 0, 1, PiPlusPi0},
		{0, 1, 1, PiMinusPi0},
		{3, 0, 0, ThreeOrMorePi},
		{1, 1, 1, ThreeOrMorePi},
		{0, 2, 5, ThreeOrMorePi},
	}

	for _, tt := range tests {
		got, ok := pionState(tt.pip, tt.pim, tt.pi0)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "(%d, %d, %d)", tt.pip, tt.pim, tt.pi0)
	}

	_, ok := pionState(-1, 0, 0)
	assert.False(t, ok)
}

func TestClassifyPartition(t *testing.T) {
	var events []Event
	nCC, nNC := 0, 0
	for pip := 0; pip < 4; pip++ {
		for pim := 0; pim < 4; pim++ {
			for pi0 := 0; pi0 < 4; pi0++ {
				events = append(events, ccEvent(pip, pim, pi0), ncEvent(pip, pim, pi0))
				nCC++
				nNC++
			}
		}
	}
	coh := ccEvent(1, 0, 0)
	coh.Coherent = true
	events = append(events, coh)
	nCC++

	c := Classify(events, 0.5)
	assert.Equal(t, nCC, c.PionTotal(CC))
	assert.Equal(t, nNC, c.PionTotal(NC))
	assert.Equal(t, nCC+1, c.Total(CC))
	assert.Equal(t, 0, c.Unclassified)
}

func TestClassifyCoherentOverlap(t *testing.T) {
	e := ncEvent(0, 0, 1)
	e.Coherent = true

	c := Classify([]Event{e, ncEvent(0, 0, 1)}, 1)
	assert.Equal(t, 2, c.Count(NC, OnePi0))
	assert.Equal(t, 1, c.Count(NC, Coherent))
	assert.Equal(t, 1, c.CoherentOverlap[NC])
	assert.Equal(t, 0, c.CoherentOverlap[CC])
}

func TestClassifyUnclassified(t *testing.T) {
	c := Classify([]Event{{}, ccEvent(-1, 0, 0), ccEvent(0, 0, 0)}, 1)
	assert.Equal(t, 2, c.Unclassified)
	assert.Equal(t, 1, c.PionTotal(CC))
}

func TestClassifyCoherentIgnoresMultiplicity(t *testing.T) {
	bad := ccEvent(0, -1, 0)
	bad.Coherent = true
	noChannel := Event{Coherent: true}

	c := Classify([]Event{bad, noChannel}, 1)
	assert.Equal(t, 1, c.Count(CC, Coherent))
	assert.Equal(t, 0, c.PionTotal(CC))
	assert.Equal(t, 0, c.CoherentOverlap[CC])
	assert.Equal(t, 2, c.Unclassified)
	assert.Equal(t, 0, c.Count(NC, Coherent))
}

func TestScaledCounts(t *testing.T) {
	events := []Event{ccEvent(0, 0, 0), ccEvent(0, 0, 0), ccEvent(0, 0, 0), ncEvent(2, 0, 0)}
	c := Classify(events, 2.7)

	assert.Equal(t, 8.0, c.Scaled(CC, ZeroPi))
	assert.Equal(t, 2.0, c.Scaled(NC, TwoPiPlus))
	assert.Equal(t, 0.0, c.Scaled(NC, ZeroPi))

	scaled := c.ScaledCounts(CC)
	raw := c.RawCounts(CC)
	assert.Equal(t, 8.0, scaled[ZeroPi])
	assert.Equal(t, 3.0, raw[ZeroPi])
}

func TestScaleCountMonotone(t *testing.T) {
	for _, scale := range []float64{0.01, 0.37, 1, 3.3, 1234.5} {
		prev := ScaleCount(0, scale)
		for raw := 1; raw < 500; raw++ {
			cur := ScaleCount(raw, scale)
			assert.GreaterOrEqual(t, cur, prev, "raw %d scale %v", raw, scale)
			prev = cur
		}
	}
}

func TestFinalStateNames(t *testing.T) {
	assert.Equal(t, "0pi", ZeroPi.String())
	assert.Equal(t, ">3pi", ThreeOrMorePi.String())
	assert.Equal(t, "coh", Coherent.String())
	assert.Equal(t, `1 \( \pi^+ \)`, OnePiPlus.Label())
	assert.Equal(t, "NC coh", BucketName(NC, Coherent))
	assert.Equal(t, "Neutral Current", NC.Title())
	assert.Len(t, (&Classification{}).Counts(), 24)
}
