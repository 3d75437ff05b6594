package gst

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/genieplot"
)

func writeFluxFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flux.root")
	f, err := groot.Create(path)
	require.NoError(t, err)

	h := hbook.NewH1D(10, 0, 0.5)
	for i := 0; i < 10; i++ {
		h.Fill(0.025+0.05*float64(i), 100)
	}
	require.NoError(t, f.Put("flux_pos_pol_numu", rhist.NewH1DFrom(h)))
	require.NoError(t, f.Close())
	return path
}

func writeCrossSectionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "total_xsec.root")
	f, err := groot.Create(path)
	require.NoError(t, err)

	dir, err := riofs.Dir(f).Mkdir("nu_mu_Ar40")
	require.NoError(t, err)
	cc := rhist.NewGraphFrom(hbook.NewS2DFrom([]float64{0, 0.5, 1}, []float64{2, 2, 2}))
	nc := rhist.NewGraphFrom(hbook.NewS2DFrom([]float64{0, 1}, []float64{0, 1}))
	require.NoError(t, dir.Put("tot_cc", cc))
	require.NoError(t, dir.Put("tot_nc", nc))
	require.NoError(t, f.Close())
	return path
}

func TestReadFlux(t *testing.T) {
	path := writeFluxFile(t)

	flux, err := ReadFlux(path, "flux_pos_pol_numu", 0.05)
	require.NoError(t, err)
	require.Len(t, flux.Contents, 10)
	for _, v := range flux.Contents {
		assert.Equal(t, 100.0, v)
	}
	integral, err := flux.Integral()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, integral, 1e-9)

	_, err = ReadFlux(path, "no_such_histogram", 0.05)
	assert.Error(t, err)
	_, err = ReadFlux(filepath.Join(t.TempDir(), "missing.root"), "flux_pos_pol_numu", 0.05)
	assert.Error(t, err)
}

func TestReadCrossSections(t *testing.T) {
	path := writeCrossSectionFile(t)
	cfg := genieplot.DefaultConfig().CrossSection

	cc, nc, err := ReadCrossSections(path, cfg)
	require.NoError(t, err)
	assert.Equal(t, genieplot.Curve{{X: 0, Y: 2}, {X: 0.5, Y: 2}, {X: 1, Y: 2}}, cc)
	assert.Equal(t, genieplot.Curve{{X: 0, Y: 0}, {X: 1, Y: 1}}, nc)

	cfg.NC = "tot_missing"
	_, _, err = ReadCrossSections(path, cfg)
	assert.Error(t, err)
}

func TestReadTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gntp.gst.root")
	f, err := groot.Create(path)
	require.NoError(t, err)

	var data row
	w, err := rtree.NewWriter(f, "gst", []rtree.WriteVar{
		{Name: "cc", Value: &data.CC},
		{Name: "nc", Value: &data.NC},
		{Name: "coh", Value: &data.Coh},
		{Name: "nfpip", Value: &data.NPiPlus},
		{Name: "nfpim", Value: &data.NPiMinus},
		{Name: "nfpi0", Value: &data.NPi0},
		{Name: "nfp", Value: &data.NProton},
		{Name: "nfn", Value: &data.NNeutron},
		{Name: "fspl", Value: &data.LeptonPDG},
		{Name: "El", Value: &data.El},
		{Name: "pl", Value: &data.Pl},
		{Name: "cthl", Value: &data.CosThL},
		{Name: "Ev", Value: &data.Ev},
		{Name: "Q2", Value: &data.Q2},
		{Name: "sumKEf", Value: &data.SumKE},
		{Name: "nf", Value: &data.NF},
		{Name: "pdgf", Value: &data.PDGF, Count: "nf"},
		{Name: "pf", Value: &data.PF, Count: "nf"},
		{Name: "cthf", Value: &data.CthF, Count: "nf"},
	})
	require.NoError(t, err)

	rows := []row{
		{CC: true, NProton: 1, LeptonPDG: 13, El: 0.5, Pl: 0.4, CosThL: 0.9, Ev: 0.6,
			NF: 1, PDGF: []int32{2212}, PF: []float64{0.45}, CthF: []float64{0.3}},
		{NC: true, NPi0: 1, LeptonPDG: 14, Ev: 1.2, Q2: 0.3, SumKE: 0.2,
			NF: 0, PDGF: []int32{}, PF: []float64{}, CthF: []float64{}},
	}
	for _, r := range rows {
		data = r
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	events, err := ReadTree(context.Background(), path, "gst")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.True(t, events[0].ChargedCurrent)
	assert.Equal(t, 1, events[0].NProton)
	assert.Equal(t, 0.4, events[0].LeptonMomentum)
	assert.Equal(t, []genieplot.Hadron{{PDG: 2212, Momentum: 0.45, CosTheta: 0.3}}, events[0].Hadrons)

	assert.True(t, events[1].NeutralCurrent)
	assert.Equal(t, 1, events[1].NPi0)
	assert.Equal(t, 0.3, events[1].Q2)
	assert.Empty(t, events[1].Hadrons)

	_, err = ReadTree(context.Background(), path, "missing")
	assert.Error(t, err)
}

func TestRowRejectsNegativeCounts(t *testing.T) {
	r := row{CC: true, NPiMinus: -2}
	_, err := r.event()
	assert.Error(t, err)

	r = row{CC: true, NF: 2, PDGF: []int32{211}}
	_, err = r.event()
	assert.Error(t, err)
}
