// Package gst reads GENIE summary trees, flux histograms and cross-section
// graphs.
package gst

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook/rootcnv"

	"github.com/decibelcooper/genieplot"
)

// row holds the gst branches the analysis reads.
type row struct {
	CC, NC, Coh bool

	NPiPlus, NPiMinus, NPi0 int32
	NProton, NNeutron       int32
	LeptonPDG               int32

	El, Pl, CosThL float64
	Ev, Q2, SumKE  float64

	NF   int32
	PDGF []int32
	PF   []float64
	CthF []float64
}

func (r *row) vars() []rtree.ReadVar {
	return []rtree.ReadVar{
		{Name: "cc", Value: &r.CC},
		{Name: "nc", Value: &r.NC},
		{Name: "coh", Value: &r.Coh},
		{Name: "nfpip", Value: &r.NPiPlus},
		{Name: "nfpim", Value: &r.NPiMinus},
		{Name: "nfpi0", Value: &r.NPi0},
		{Name: "nfp", Value: &r.NProton},
		{Name: "nfn", Value: &r.NNeutron},
		{Name: "fspl", Value: &r.LeptonPDG},
		{Name: "El", Value: &r.El},
		{Name: "pl", Value: &r.Pl},
		{Name: "cthl", Value: &r.CosThL},
		{Name: "Ev", Value: &r.Ev},
		{Name: "Q2", Value: &r.Q2},
		{Name: "sumKEf", Value: &r.SumKE},
		{Name: "nf", Value: &r.NF},
		{Name: "pdgf", Value: &r.PDGF},
		{Name: "pf", Value: &r.PF},
		{Name: "cthf", Value: &r.CthF},
	}
}

func (r *row) event() (genieplot.Event, error) {
	for _, n := range [...]int32{r.NPiPlus, r.NPiMinus, r.NPi0, r.NProton, r.NNeutron, r.NF} {
		if n < 0 {
			return genieplot.Event{}, fmt.Errorf("negative multiplicity %d", n)
		}
	}
	n := int(r.NF)
	if len(r.PDGF) < n || len(r.PF) < n || len(r.CthF) < n {
		return genieplot.Event{}, fmt.Errorf("nf=%d exceeds hadron arrays", n)
	}

	e := genieplot.Event{
		ChargedCurrent: r.CC,
		NeutralCurrent: r.NC,
		Coherent:       r.Coh,
		NPiPlus:        int(r.NPiPlus),
		NPiMinus:       int(r.NPiMinus),
		NPi0:           int(r.NPi0),
		NProton:        int(r.NProton),
		NNeutron:       int(r.NNeutron),
		LeptonPDG:      int(r.LeptonPDG),
		LeptonEnergy:   r.El,
		LeptonMomentum: r.Pl,
		LeptonCosTheta: r.CosThL,
		NeutrinoEnergy: r.Ev,
		Q2:             r.Q2,
		SumKE:          r.SumKE,
	}
	if n > 0 {
		e.Hadrons = make([]genieplot.Hadron, n)
		for i := range e.Hadrons {
			e.Hadrons[i] = genieplot.Hadron{PDG: int(r.PDGF[i]), Momentum: r.PF[i], CosTheta: r.CthF[i]}
		}
	}
	return e, nil
}

// ReadTree reads every entry of the named summary tree.
func ReadTree(ctx context.Context, path, name string) ([]genieplot.Event, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := riofs.Dir(f).Get(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%s: %q is a %s, not a tree", path, name, obj.Class())
	}

	var data row
	r, err := rtree.NewReader(tree, data.vars())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	events := make([]genieplot.Event, 0, tree.Entries())
	err = r.Read(func(rctx rtree.RCtx) error {
		if rctx.Entry%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		e, err := data.event()
		if err != nil {
			return fmt.Errorf("entry %d: %w", rctx.Entry, err)
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("read summary tree", "path", path, "tree", name, "events", len(events))
	return events, nil
}

// ReadFlux reads a flux histogram. binWidth overrides the histogram's own
// binning, which is only checked against it.
func ReadFlux(path, name string, binWidth float64) (genieplot.FluxSpectrum, error) {
	f, err := groot.Open(path)
	if err != nil {
		return genieplot.FluxSpectrum{}, err
	}
	defer f.Close()

	obj, err := riofs.Dir(f).Get(name)
	if err != nil {
		return genieplot.FluxSpectrum{}, fmt.Errorf("%s: %w", path, err)
	}
	h1, ok := obj.(rhist.H1)
	if !ok {
		return genieplot.FluxSpectrum{}, fmt.Errorf("%s: %q is a %s, not a 1D histogram", path, name, obj.Class())
	}

	h := rootcnv.H1D(h1)
	flux := genieplot.FluxSpectrum{
		Contents: make([]float64, h.Len()),
		BinWidth: binWidth,
	}
	for i := range flux.Contents {
		_, flux.Contents[i] = h.XY(i)
	}

	if h.Len() > 0 {
		if w := h.Binning.Bins[0].XWidth(); math.Abs(w-binWidth) > 1e-6*binWidth {
			slog.Warn("flux binning differs from configured bin width",
				"histogram", name, "bin_width", w, "configured", binWidth)
		}
	}
	return flux, nil
}

// ReadCrossSections reads the CC and NC total cross-section graphs of a
// cross-section file.
func ReadCrossSections(path string, cfg genieplot.CrossSectionConfig) (cc, nc genieplot.Curve, err error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dir := riofs.Dir(f)
	if cc, err = readCurve(dir, graphPath(cfg.Dir, cfg.CC)); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if nc, err = readCurve(dir, graphPath(cfg.Dir, cfg.NC)); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cc, nc, nil
}

func graphPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func readCurve(dir riofs.Directory, name string) (genieplot.Curve, error) {
	obj, err := dir.Get(name)
	if err != nil {
		return nil, err
	}
	g, ok := obj.(rhist.Graph)
	if !ok {
		return nil, fmt.Errorf("%q is a %s, not a graph", name, obj.Class())
	}

	curve := make(genieplot.Curve, g.Len())
	for i := range curve {
		curve[i].X, curve[i].Y = g.XY(i)
	}
	return curve, nil
}
