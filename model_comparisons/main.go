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
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/genieplot"
	"github.com/decibelcooper/genieplot/gst"
	"github.com/decibelcooper/genieplot/report"
)

var (
	configPath = flag.String("config", "", "YAML configuration file (default: built-in SBND setup)")
	output     = flag.String("output", "", "output directory, overriding the configuration")
	variant    = flag.String("variant", "", "energy reconstruction: with-energy-factor or without-energy-factor")
	workers    = flag.Int("workers", 0, "configurations processed in parallel")
	errBars    = flag.Bool("errbars", false, "draw statistical error bars")
	pdf        = flag.Bool("pdf", false, "also write summary.pdf")
	cpuProfile = flag.Bool("profile", false, "write a CPU profile")
	only       genieplot.StringArrayFlags
)

func init() {
	flag.Var(&only, "only", "process only the named configuration (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

Compares the interaction predictions of the configured GENIE models: writes
n_interactions.txt, FSI_Reco_Table.tex, FSI_MC_Table.tex and the kinematic
distributions in absolute and area normalisation.

options:
`,
	)
	flag.PrintDefaults()
}

func distributions() []genieplot.Distribution {
	var ds []genieplot.Distribution
	for _, t := range []genieplot.Topology{genieplot.CC0Pi, genieplot.CC1PiPlus, genieplot.CC1Pi0, genieplot.NC1Pi0} {
		ds = append(ds,
			genieplot.Distribution{Name: "Q2", Title: "Q2", XLabel: "Q^2 (GeV^2)", NBins: 50, Min: 0, Max: 2.5,
				Topology: t, Variable: genieplot.VarQ2},
			genieplot.Distribution{Name: "Ev", Title: "Ev", XLabel: "E_nu (GeV)", NBins: 50, Min: 0, Max: 3,
				Topology: t, Variable: genieplot.VarNeutrinoEnergy},
		)
	}

	pions := []struct {
		topology genieplot.Topology
		pdg      int
	}{
		{genieplot.CC1PiPlus, genieplot.PDGPiPlus},
		{genieplot.CC1Pi0, genieplot.PDGPi0},
		{genieplot.NC1Pi0, genieplot.PDGPi0},
	}
	for _, p := range pions {
		ds = append(ds,
			genieplot.Distribution{Name: "CosThPi", Title: "CosThetaPi", XLabel: "cos(theta_pi)", NBins: 40, Min: -1, Max: 1,
				Topology: p.topology, Variable: genieplot.PionCosTheta(p.pdg)},
			genieplot.Distribution{Name: "PPi", Title: "PPi", XLabel: "P_pi (GeV)", NBins: 40, Min: 0, Max: 1.5,
				Topology: p.topology, Variable: genieplot.PionMomentum(p.pdg)},
		)
	}

	for _, t := range []genieplot.Topology{genieplot.CC0Pi, genieplot.CC1PiPlus, genieplot.CC1Pi0} {
		ds = append(ds,
			genieplot.Distribution{Name: "CosThMu", Title: "CosThetaMu", XLabel: "cos(theta_mu)", NBins: 40, Min: -1, Max: 1,
				Topology: t, Variable: genieplot.VarMuonCosTheta},
			genieplot.Distribution{Name: "PMu", Title: "PMu", XLabel: "P_mu (GeV)", NBins: 40, Min: 0, Max: 1.5,
				Topology: t, Variable: genieplot.VarMuonMomentum},
		)
	}
	return ds
}

// recoPlot is a histogram of reconstructed quantities of the zero-pion
// events of one channel.
type recoPlot struct {
	dist     genieplot.Distribution
	channel  genieplot.Channel
	residual bool
}

func (p recoPlot) histogram(r *genieplot.Result) *hbook.H1D {
	if p.residual {
		return p.dist.FillValues(r.Reconstruction.Residuals(p.channel))
	}
	return p.dist.FillValues(r.Reconstruction.Energies(p.channel))
}

func recoPlots() []recoPlot {
	var ps []recoPlot
	for _, c := range []struct {
		topology genieplot.Topology
		channel  genieplot.Channel
	}{
		{genieplot.CC0Pi, genieplot.CC},
		{genieplot.NC0Pi, genieplot.NC},
	} {
		ps = append(ps,
			recoPlot{
				dist: genieplot.Distribution{Name: "RecoEv", Title: "Reconstructed Ev", XLabel: "E_nu^reco (GeV)",
					NBins: 50, Min: 0, Max: 3, Topology: c.topology},
				channel: c.channel,
			},
			recoPlot{
				dist: genieplot.Distribution{Name: "RecoEvResidual", Title: "|Ev reco - Ev|", XLabel: "|E_nu^reco - E_nu| (GeV)",
					NBins: 50, Min: 0, Max: 1.5, Topology: c.topology},
				channel:  c.channel,
				residual: true,
			},
		)
	}
	return ps
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
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
		Variant: *variant,
		Workers: *workers,
	})
	if err != nil {
		log.Fatal(err)
	}

	results, err := genieplot.Run(context.Background(), &cfg, gst.Loader{})
	if err != nil {
		log.Fatal(err)
	}
	if len(genieplot.Succeeded(results)) == 0 {
		log.Fatal("no configuration could be analysed")
	}

	out := func(name string) string { return filepath.Join(cfg.Output, name) }

	if err := writeFile(out("n_interactions.txt"), func(f *os.File) error {
		return report.WriteSummary(f, results)
	}); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(out("FSI_Reco_Table.tex"), func(f *os.File) error {
		return report.WriteTable(f, report.ScaledColumns(results))
	}); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(out("FSI_MC_Table.tex"), func(f *os.File) error {
		return report.WriteTable(f, report.RawColumns(results))
	}); err != nil {
		log.Fatal(err)
	}

	drawn := genieplot.Drawn(results)
	var images []string
	for _, mode := range []genieplot.Mode{genieplot.Absolute, genieplot.Area} {
		for _, d := range distributions() {
			path, err := genieplot.SaveDistribution(drawn, d, mode, *errBars, cfg.Output)
			if err != nil {
				slog.Error("plot failed", "plot", d.FileName(mode), "error", err)
				continue
			}
			images = append(images, path)
		}

		for _, p := range recoPlots() {
			opts := p.dist.Options(mode)
			opts.ErrorBars = *errBars
			path := out(p.dist.FileName(mode))
			if err := genieplot.SaveOverlay(drawn, p.histogram, opts, path); err != nil {
				slog.Error("plot failed", "plot", p.dist.FileName(mode), "error", err)
				continue
			}
			images = append(images, path)
		}
	}

	if *pdf {
		if err := report.WritePDF(out("summary.pdf"), results, images); err != nil {
			log.Fatal(err)
		}
	}
}
