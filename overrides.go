package genieplot

import "os"

// Overrides are command-line settings that take precedence over the
// configuration file. Zero values leave the configuration alone.
type Overrides struct {
	Output  string
	Only    []string
	Variant string
	Workers int
}

// PrepareConfig loads the configuration at path, or the defaults if path is
// empty, applies the overrides, validates the result and creates the output
// directory.
func PrepareConfig(path string, o Overrides) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if o.Output != "" {
		cfg.Output = o.Output
	}
	if o.Variant != "" {
		v, err := ParseVariant(o.Variant)
		if err != nil {
			return cfg, err
		}
		cfg.Reconstruction = v
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if err := cfg.Only(o.Only); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, os.MkdirAll(cfg.Output, 0o755)
}
