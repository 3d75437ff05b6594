// Package report writes the interaction tables and summaries of a run.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/decibelcooper/genieplot"
)

// Column is one configuration's entries in an interaction table.
type Column struct {
	Label  string
	Counts [2][genieplot.NumFinalStates]float64
}

// ScaledColumns returns the normalized predictions of the successful
// results, one column each.
func ScaledColumns(results []genieplot.Result) []Column {
	return columns(results, (*genieplot.Classification).ScaledCounts)
}

// RawColumns returns the raw Monte Carlo counts of the successful results.
func RawColumns(results []genieplot.Result) []Column {
	return columns(results, (*genieplot.Classification).RawCounts)
}

func columns(results []genieplot.Result, counts func(*genieplot.Classification, genieplot.Channel) [genieplot.NumFinalStates]float64) []Column {
	var cols []Column
	for _, r := range genieplot.Succeeded(results) {
		col := Column{Label: r.Configuration.Title()}
		for _, ch := range genieplot.Channels {
			col.Counts[ch] = counts(&r.Classification, ch)
		}
		cols = append(cols, col)
	}
	return cols
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`_`, `\_`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`$`, `\$`,
)

// formatCount prints like a stream with five significant digits.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

// WriteTable writes a LaTeX longtable with one row per hadronic final state
// and one column per configuration, the CC block above the NC block.
func WriteTable(w io.Writer, cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("no columns to tabulate")
	}
	n := len(cols)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\begin{longtable}{| l || * {%d}{c | } }\n", n)
	fmt.Fprintln(bw, `\hline`)
	fmt.Fprintf(bw, "  & \\multicolumn{ %d }{c|}{ \\textbf{ Model Configurations } } \\\\\n", n)
	fmt.Fprintln(bw, `\hline`)

	headers := make([]string, n)
	for i, col := range cols {
		headers[i] = fmt.Sprintf("\\rotatebox{90}{ \\textbf{ %s } }", latexEscaper.Replace(col.Label))
	}
	fmt.Fprintf(bw, " \\textbf{ Hadronic Final State } & %s \\\\\n", strings.Join(headers, " & "))
	fmt.Fprintln(bw, ` \hline `)

	for _, ch := range genieplot.Channels {
		fmt.Fprintf(bw, " \\multicolumn{ %d }{ | c | }{ \\textit{ %s } } \\\\ \n", n+1, ch.Title())
		fmt.Fprintln(bw, ` \hline `)

		cells := make([]string, n)
		for s := genieplot.FinalState(0); s < genieplot.NumFinalStates; s++ {
			for i, col := range cols {
				cells[i] = formatCount(col.Counts[ch][s])
			}
			fmt.Fprintf(bw, "%s & %s \\\\ \n", s.Label(), strings.Join(cells, " & "))
		}
		fmt.Fprintln(bw, ` \hline `)
	}
	fmt.Fprintln(bw, `\end{longtable}`)
	return bw.Flush()
}
