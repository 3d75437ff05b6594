package genieplot

import (
	"fmt"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
)

const (
	AbsoluteYLabel = "Number of SBND events"
	AreaYLabel     = "SBND events, area normalised"
)

// FileName is the output file of the distribution's overlay, e.g.
// Q2_CC0Pi_Area_Plot.png.
func (d Distribution) FileName(mode Mode) string {
	if mode == Area {
		return fmt.Sprintf("%s_%s_Area_Plot.png", d.Name, d.Topology.Name)
	}
	return fmt.Sprintf("%s_%s_Plot.png", d.Name, d.Topology.Name)
}

// Options returns the overlay labels of the distribution.
func (d Distribution) Options(mode Mode) OverlayOptions {
	opts := OverlayOptions{
		Title:  fmt.Sprintf("%s %s, %s", d.Title, mode, d.Topology.Title),
		XLabel: d.XLabel,
		YLabel: AbsoluteYLabel,
		Mode:   mode,
	}
	if mode == Area {
		opts.YLabel = AreaYLabel
	}
	return opts
}

// Histogrammer books and fills one configuration's histogram.
type Histogrammer func(r *Result) *hbook.H1D

// EventHistogrammer fills d from the configuration's events.
func EventHistogrammer(d Distribution) Histogrammer {
	return func(r *Result) *hbook.H1D {
		return d.Fill(r.Events)
	}
}

// SaveOverlay fills one histogram per result, overlays them and writes the
// plot to path.
func SaveOverlay(results []Result, hist Histogrammer, opts OverlayOptions, path string) error {
	series := make([]Series, 0, len(results))
	for i := range results {
		r := &results[i]
		series = append(series, Series{
			Label: r.Configuration.Title(),
			Hist:  hist(r),
			Scale: r.Scale,
		})
	}

	p, err := Overlay(series, opts)
	if err != nil {
		return err
	}
	if err := SavePlot(p, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// SaveDistribution overlays d in the given mode under dir and returns the
// written path.
func SaveDistribution(results []Result, d Distribution, mode Mode, errorBars bool, dir string) (string, error) {
	opts := d.Options(mode)
	opts.ErrorBars = errorBars
	path := filepath.Join(dir, d.FileName(mode))
	return path, SaveOverlay(results, EventHistogrammer(d), opts, path)
}
