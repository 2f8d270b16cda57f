package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the render configuration threaded into the resolver and
// compositor. Nothing reads these values from globals.
type Config struct {
	TemplateDir string `toml:"template_dir"`
	OutputDir   string `toml:"output_dir"`
	DataDir     string `toml:"data_dir"`

	// Per-role font files (TTF). Empty means the embedded Go fonts.
	TitleFont string `toml:"title_font"`
	BodyFont  string `toml:"body_font"`

	// Pre-fill shown when a card has no description.
	DefaultDescription string `toml:"default_description"`

	// Per-category template overrides, keyed by category name.
	TemplateOverrides map[string]string `toml:"template_overrides"`

	// Back-art image per back category ("donjon", "tresor").
	Backs map[string]string `toml:"backs"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TemplateDir: "assets/templates",
		OutputDir:   "out",
		DataDir:     "data",
		Backs: map[string]string{
			"donjon": "assets/backs/dos_donjon.png",
			"tresor": "assets/backs/dos_tresor.png",
		},
	}
}

// Load reads a TOML config file, filling any unset field from Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "assets/templates"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Backs == nil {
		cfg.Backs = Default().Backs
	}
	return cfg, nil
}
