package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/profile"

	"github.com/decibelcooper/genieplot"
	"github.com/decibelcooper/genieplot/gst"
)

var (
	configPath = flag.String("config", "", "YAML configuration file (default: built-in SBND setup)")
	output     = flag.String("output", "", "output directory, overriding the configuration")
	workers    = flag.Int("workers", 0, "configurations processed in parallel")
	errBars    = flag.Bool("errbars", false, "draw statistical error bars")
	logY       = flag.Bool("logy", false, "logarithmic y axis")
	cpuProfile = flag.Bool("profile", false, "write a CPU profile")
	only       genieplot.StringArrayFlags
)

func init() {
	flag.Var(&only, "only", "process only the named configuration (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Plots the final-state nucleon, proton and neutron multiplicities of zero-pion
events for every configured GENIE model.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *cpuProfile {
		defer profile.Start().Stop()
	}

	cfg, err := genieplot.PrepareConfig(*configPath, genieplot.Overrides{
		Output:  *output,
		Only:    only.Array,
		Workers: *workers,
	})
	if err != nil {
		log.Fatal(err)
	}

	results, err := genieplot.Run(context.Background(), &cfg, gst.Loader{})
	if err != nil {
		log.Fatal(err)
	}
	drawn := genieplot.Drawn(results)
	if len(drawn) == 0 {
		log.Fatal("no configuration could be analysed")
	}

	multiplicities := []struct {
		name, title, xLabel string
		nBins               int
		variable            genieplot.Variable
	}{
		{"NN", "FS Nucleons", "N_N", 25, genieplot.VarNNucleons},
		{"Np", "FS Protons", "N_p", 15, genieplot.VarNProtons},
		{"Nn", "FS Neutrons", "N_n", 15, genieplot.VarNNeutrons},
	}

	for _, m := range multiplicities {
		for _, t := range []genieplot.Topology{genieplot.CC0Pi, genieplot.NC0Pi} {
			d := genieplot.Distribution{
				Name:     m.name,
				Title:    m.title,
				XLabel:   m.xLabel,
				NBins:    m.nBins,
				Min:      0,
				Max:      float64(m.nBins),
				Topology: t,
				Variable: m.variable,
			}

			opts := d.Options(genieplot.Absolute)
			opts.Title = d.Title + ", " + t.Title
			opts.ErrorBars = *errBars
			opts.LogY = *logY
			opts.XTicks = genieplot.IntegerTicks{}
			path := filepath.Join(cfg.Output, d.FileName(genieplot.Absolute))
			if err := genieplot.SaveOverlay(drawn, genieplot.EventHistogrammer(d), opts, path); err != nil {
				slog.Error("plot failed", "plot", path, "error", err)
			}
		}
	}
}
