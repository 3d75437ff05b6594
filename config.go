package genieplot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one comparison run: the shared flux, the model
// configurations to compare and where to put the output.
type Config struct {
	Flux           FluxConfig         `yaml:"flux"`
	CrossSection   CrossSectionConfig `yaml:"cross_section"`
	Tree           string             `yaml:"tree"`
	Configurations []Configuration    `yaml:"configurations"`
	Reconstruction Variant            `yaml:"reconstruction"`
	Output         string             `yaml:"output"`
	Workers        int                `yaml:"workers"`
}

// FluxConfig locates the flux histogram.
type FluxConfig struct {
	Path      string  `yaml:"path"`
	Histogram string  `yaml:"histogram"`
	BinWidth  float64 `yaml:"bin_width"`
}

// CrossSectionConfig names the total cross-section graphs inside every
// configuration's cross-section file.
type CrossSectionConfig struct {
	Dir string `yaml:"dir"`
	CC  string `yaml:"cc"`
	NC  string `yaml:"nc"`
}

// Configuration is one model variant: an event sample, its cross sections
// and the number of events it was generated with.
type Configuration struct {
	Name            string `yaml:"name"`
	Label           string `yaml:"label"`
	Events          string `yaml:"events"`
	CrossSections   string `yaml:"cross_sections"`
	GeneratedEvents int    `yaml:"generated_events"`
	Hide            bool   `yaml:"hide"`
}

// Title is the label shown in legends and table headers.
func (c Configuration) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

const defaultGeneratedEvents = 1000000

// DefaultConfig returns the SBND comparison of the five GENIE model
// configurations.
func DefaultConfig() Config {
	sample := func(name, label, dir string, hide bool) Configuration {
		return Configuration{
			Name:            name,
			Label:           label,
			Events:          "samples/" + dir + "/sbnd/1M/gntp.10000.gst.root",
			CrossSections:   "samples/" + dir + "/xsec_files/total_xsec.root",
			GeneratedEvents: defaultGeneratedEvents,
			Hide:            hide,
		}
	}

	return Config{
		Flux: FluxConfig{
			Path:      "fluxes/miniboone_april07_baseline_rgen610.6_flux_pospolarity_fluxes.root",
			Histogram: "flux_pos_pol_numu",
			BinWidth:  DefaultFluxBinWidth,
		},
		CrossSection: CrossSectionConfig{
			Dir: "nu_mu_Ar40",
			CC:  "tot_cc",
			NC:  "tot_nc",
		},
		Tree: "gst",
		Configurations: []Configuration{
			sample("Default", "Default", "Default", false),
			sample("Default+MEC", "Default + MEC", "Default+MEC", false),
			sample("G17_02b", "G17_02b", "G16_02b", false),
			sample("G17_01a", "G17_01a", "G16_01a", false),
			sample("G17_01b", "G17_01b", "G16_01b", true),
		},
		Reconstruction: WithEnergyFactor,
		Output:         ".",
		Workers:        1,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are an
// error. A configurations list in the file replaces the default one; its
// entries default to 1,000,000 generated events.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range cfg.Configurations {
		if cfg.Configurations[i].GeneratedEvents == 0 {
			cfg.Configurations[i].GeneratedEvents = defaultGeneratedEvents
		}
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Flux.Path == "" {
		errs = append(errs, errors.New("flux.path is empty"))
	}
	if c.Flux.Histogram == "" {
		errs = append(errs, errors.New("flux.histogram is empty"))
	}
	if !(c.Flux.BinWidth > 0) {
		errs = append(errs, fmt.Errorf("flux.bin_width must be positive, got %v", c.Flux.BinWidth))
	}
	if c.CrossSection.CC == "" || c.CrossSection.NC == "" {
		errs = append(errs, errors.New("cross_section.cc and cross_section.nc are required"))
	}
	if c.Tree == "" {
		errs = append(errs, errors.New("tree is empty"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Reconstruction != WithEnergyFactor && c.Reconstruction != WithoutEnergyFactor {
		errs = append(errs, fmt.Errorf("unknown reconstruction variant %v", c.Reconstruction))
	}
	if len(c.Configurations) == 0 {
		errs = append(errs, errors.New("no configurations"))
	}

	seen := make(map[string]bool)
	for i, conf := range c.Configurations {
		switch {
		case conf.Name == "":
			errs = append(errs, fmt.Errorf("configurations[%d]: name is empty", i))
		case seen[conf.Name]:
			errs = append(errs, fmt.Errorf("configurations[%d]: duplicate name %q", i, conf.Name))
		}
		seen[conf.Name] = true

		if conf.Events == "" {
			errs = append(errs, fmt.Errorf("configuration %q: events is empty", conf.Name))
		}
		if conf.CrossSections == "" {
			errs = append(errs, fmt.Errorf("configuration %q: cross_sections is empty", conf.Name))
		}
		if conf.GeneratedEvents <= 0 {
			errs = append(errs, fmt.Errorf("configuration %q: generated_events must be positive, got %d",
				conf.Name, conf.GeneratedEvents))
		}
	}
	return errors.Join(errs...)
}

// Only restricts the configurations to the named ones, keeping their
// order. An empty list keeps everything.
func (c *Config) Only(names []string) error {
	if len(names) == 0 {
		return nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var kept []Configuration
	for _, conf := range c.Configurations {
		if want[conf.Name] {
			kept = append(kept, conf)
			delete(want, conf.Name)
		}
	}
	for n := range want {
		return fmt.Errorf("unknown configuration %q", n)
	}
	c.Configurations = kept
	return nil
}
