package gst

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/genieplot"
)

// Loader reads run inputs from disk. Event samples ending in .csv are read
// as CSV dumps, everything else as ROOT files.
type Loader struct{}

var _ genieplot.Loader = Loader{}

func (Loader) Flux(ctx context.Context, cfg genieplot.FluxConfig) (genieplot.FluxSpectrum, error) {
	if err := ctx.Err(); err != nil {
		return genieplot.FluxSpectrum{}, err
	}
	return ReadFlux(cfg.Path, cfg.Histogram, cfg.BinWidth)
}

func (Loader) CrossSections(ctx context.Context, path string, cfg genieplot.CrossSectionConfig) (cc, nc genieplot.Curve, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return ReadCrossSections(path, cfg)
}

func (Loader) Events(ctx context.Context, path, tree string) ([]genieplot.Event, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(ctx, path)
	}
	return ReadTree(ctx, path, tree)
}
