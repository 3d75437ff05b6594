package genieplot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Loader reads the inputs of a run.
type Loader interface {
	Flux(ctx context.Context, cfg FluxConfig) (FluxSpectrum, error)
	CrossSections(ctx context.Context, path string, cfg CrossSectionConfig) (cc, nc Curve, err error)
	Events(ctx context.Context, path, tree string) ([]Event, error)
}

// Result is the analysis of one configuration. If Err is set the
// configuration failed and only Configuration is meaningful.
type Result struct {
	Configuration  Configuration
	Events         []Event
	Scale          float64
	Classification Classification
	Reconstruction Reconstruction
	Particles      ParticleCounts
	Err            error
}

// Run normalizes, classifies and reconstructs every configuration. A
// configuration that fails is reported in its Result and does not stop the
// others; only a flux that cannot be loaded, or a cancelled context, fails
// the whole run. Results keep the order of cfg.Configurations.
func Run(ctx context.Context, cfg *Config, loader Loader) ([]Result, error) {
	flux, err := loader.Flux(ctx, cfg.Flux)
	if err != nil {
		return nil, fmt.Errorf("loading flux: %w", err)
	}

	results := make([]Result, len(cfg.Configurations))

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, conf := range cfg.Configurations {
		i, conf := i, conf // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			results[i] = runConfiguration(gCtx, cfg, conf, flux, loader)
			if results[i].Err != nil {
				slog.Error("configuration failed",
					"configuration", conf.Name,
					"error", results[i].Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func runConfiguration(ctx context.Context, cfg *Config, conf Configuration, flux FluxSpectrum, loader Loader) Result {
	start := time.Now()
	res := Result{Configuration: conf}

	cc, nc, err := loader.CrossSections(ctx, conf.CrossSections, cfg.CrossSection)
	if err != nil {
		res.Err = fmt.Errorf("%s: cross sections: %w", conf.Name, err)
		return res
	}

	res.Scale, err = Normalization(conf.GeneratedEvents, flux, cc, nc)
	if err != nil {
		res.Err = fmt.Errorf("%s: normalization: %w", conf.Name, err)
		return res
	}

	events, err := loader.Events(ctx, conf.Events, cfg.Tree)
	if err != nil {
		res.Err = fmt.Errorf("%s: events: %w", conf.Name, err)
		return res
	}
	res.Events = events

	res.Classification = Classify(events, res.Scale)
	for _, ch := range Channels {
		if n := res.Classification.CoherentOverlap[ch]; n > 0 {
			slog.Info("coherent events also counted by pion multiplicity",
				"configuration", conf.Name,
				"channel", ch.String(),
				"events", n)
		}
	}
	if n := res.Classification.Unclassified; n > 0 {
		slog.Warn("events with neither CC nor NC flag",
			"configuration", conf.Name,
			"events", n)
	}

	res.Reconstruction = ReconstructSample(events, cfg.Reconstruction)
	for _, ch := range Channels {
		if n := res.Reconstruction.Singular[ch]; n > 0 {
			slog.Warn("events on the reconstruction singularity",
				"configuration", conf.Name,
				"channel", ch.String(),
				"events", n)
		}
	}

	res.Particles = CountParticles(events)

	slog.Info("configuration processed",
		"configuration", conf.Name,
		"events", len(events),
		"scale", res.Scale,
		"elapsed", time.Since(start))
	return res
}

// Succeeded returns the results without an error.
func Succeeded(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

// Drawn returns the successful results whose configuration is not hidden
// from plots.
func Drawn(results []Result) []Result {
	var out []Result
	for _, r := range Succeeded(results) {
		if !r.Configuration.Hide {
			out = append(out, r)
		}
	}
	return out
}
