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
	cpuProfile = flag.Bool("profile", false, "write a CPU profile")
	only       genieplot.StringArrayFlags
)

func init() {
	flag.Var(&only, "only", "process only the named configuration (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Draws the proton multiplicity against summed hadronic kinetic energy of
zero-pion events, one heat map per configured GENIE model, and overlays the
average proton kinetic energy.

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
	ok := genieplot.Succeeded(results)
	if len(ok) == 0 {
		log.Fatal("no configuration could be analysed")
	}

	channels := []struct {
		name     string
		topology genieplot.Topology
	}{
		{"CC", genieplot.CC0Pi},
		{"NC", genieplot.NC0Pi},
	}

	for _, r := range ok {
		for _, ch := range channels {
			m := genieplot.HeatMap{
				Title:  fmt.Sprintf("N_p vs sum E_K %s, %s", r.Configuration.Title(), ch.topology.Title),
				XLabel: "N_p",
				YLabel: "sum E_K (GeV)",
				Hist:   genieplot.ProtonEnergyHist(r.Events, ch.topology),
			}
			path := filepath.Join(cfg.Output, fmt.Sprintf("NpKESum_%s_Plots_%s.png", ch.name, r.Configuration.Name))
			if err := m.Save(path); err != nil {
				slog.Error("heat map failed", "plot", path, "error", err)
			}
		}
	}

	drawn := genieplot.Drawn(results)
	for _, ch := range channels {
		d := genieplot.Distribution{
			Name:     "avg_KE_p",
			Title:    "Average proton KE",
			XLabel:   "Avg KE_p (GeV)",
			NBins:    50,
			Min:      0,
			Max:      2.5,
			Topology: ch.topology,
			Variable: genieplot.VarAvgProtonKE,
		}
		opts := d.Options(genieplot.Absolute)
		opts.Title = d.Title + ", " + ch.topology.Title
		opts.ErrorBars = *errBars
		path := filepath.Join(cfg.Output, d.FileName(genieplot.Absolute))
		if err := genieplot.SaveOverlay(drawn, genieplot.EventHistogrammer(d), opts, path); err != nil {
			slog.Error("plot failed", "plot", path, "error", err)
		}
	}
}
