package genieplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places labelled ticks on round values, using roughly
// NSuggestedTicks of them, and fills the gaps with unlabelled minor ticks.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: formatTick(min)}}
	}

	span := max - min
	unit := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/unit < float64(n-1) {
		unit /= 10
	}

	mult := int(span / unit / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	major := float64(mult) * unit

	var ticks []plot.Tick
	labelled := make(map[float64]bool)
	for v := math.Floor(min/major) * major; v <= max; v += major {
		if v < min {
			continue
		}
		r := roundTo(v, tickPrecision(math.Max(math.Abs(v), major), major))
		labelled[r] = true
		ticks = append(ticks, plot.Tick{Value: r, Label: formatTick(r)})
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
	for v := math.Floor(min/minor) * minor; v <= max; v += minor {
		if v < min {
			continue
		}
		r := roundTo(v, tickPrecision(math.Max(math.Abs(v), minor), minor))
		if !labelled[r] {
			ticks = append(ticks, plot.Tick{Value: r})
		}
	}
	return ticks
}

// IntegerTicks labels every integer of a multiplicity axis, or every
// Step-th one for wide ranges.
type IntegerTicks struct {
	Step int
}

func (t IntegerTicks) Ticks(min, max float64) []plot.Tick {
	step := t.Step
	if step <= 0 {
		step = 1
		for (max-min)/float64(step) > 15 {
			step *= 5
		}
	}

	var ticks []plot.Tick
	for i := int(math.Ceil(min)); float64(i) <= max; i++ {
		tick := plot.Tick{Value: float64(i)}
		if i%step == 0 {
			tick.Label = strconv.Itoa(i)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// tickPrecision is the number of decimals needed to tell apart ticks spaced
// delta apart near v.
func tickPrecision(v, delta float64) int {
	return int(math.Ceil(math.Log10(v)) - math.Floor(math.Log10(delta)))
}

func roundTo(x float64, prec int) float64 {
	if x == 0 || (prec >= 0 && x == math.Trunc(x)) {
		return x
	}
	pow := math.Pow10(prec)
	scaled := x * pow
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return x
	}
	r := math.Round(scaled) / pow
	if r == 0 {
		// no negative zero
		return 0
	}
	return r
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
