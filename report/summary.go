package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/decibelcooper/genieplot"
)

var summaryNames = [genieplot.NumFinalStates]string{
	"0Pi", "1Pi+", "1Pi-", "1Pi0", "2Pi+", "2Pi-", "2Pi0",
	"Pi+Pi-", "Pi+Pi0", "Pi-Pi0", ">3Pi", "COH",
}

const rule = " ------------------------- "

// WriteSummary writes the per-configuration interaction counts: the
// normalized SBND prediction, unfloored, and the raw Monte Carlo counts.
// Failed configurations are listed with their error.
func WriteSummary(w io.Writer, results []genieplot.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		fmt.Fprintf(bw, " %s \n", r.Configuration.Title())
		if r.Err != nil {
			fmt.Fprintf(bw, " failed: %v\n", r.Err)
			fmt.Fprintln(bw, rule)
			continue
		}

		c := &r.Classification
		fmt.Fprintf(bw, " normalization : %s\n", formatCount(r.Scale))
		fmt.Fprintln(bw, " -----------SBND----------")
		fmt.Fprintln(bw, rule)
		writeBlock(bw, func(ch genieplot.Channel, s genieplot.FinalState) float64 {
			return float64(c.Count(ch, s)) * r.Scale
		})
		fmt.Fprintln(bw, " ------------MC-----------")
		fmt.Fprintln(bw, rule)
		writeBlock(bw, func(ch genieplot.Channel, s genieplot.FinalState) float64 {
			return float64(c.Count(ch, s))
		})
		fmt.Fprintln(bw, rule)

		fmt.Fprintln(bw, " ----Final state particles----")
		for _, row := range r.Particles.Rows() {
			fmt.Fprintf(bw, " %-15s: %d\n", row.Label, row.Count)
		}
		fmt.Fprintln(bw, rule)
	}
	return bw.Flush()
}

func writeBlock(w io.Writer, value func(genieplot.Channel, genieplot.FinalState) float64) {
	for _, ch := range genieplot.Channels {
		for s := genieplot.FinalState(0); s < genieplot.NumFinalStates; s++ {
			fmt.Fprintf(w, " %-9s: %s\n", ch.String()+summaryNames[s], formatCount(value(ch, s)))
		}
		fmt.Fprintln(w, rule)
	}
}
