package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	OutDir  string `mapstructure:"out_dir" yaml:"out_dir"`
	FileExt string `mapstructure:"file_ext" yaml:"file_ext"`
	Stride  int    `mapstructure:"stride" yaml:"stride"`
	Gzip    bool   `mapstructure:"gzip" yaml:"gzip"`

	// Manifest label decoration suffixes, checked in order; the first
	// match is stripped from the file stem.
	LabelTrimSuffixes []string `mapstructure:"label_trim_suffixes" yaml:"label_trim_suffixes"`

	// Aliases overrides the built-in header alias table per canonical
	// field. Precedence inside each list is explicit: earlier wins.
	Aliases map[string][]string `mapstructure:"aliases" yaml:"aliases,omitempty"`

	// Cell typing inputs: directory of assignment CSVs plus the mapping
	// from dataset sample name to assignment file stem.
	CellTypesDir    string            `mapstructure:"cell_types_dir" yaml:"cell_types_dir"`
	CellTypeSamples map[string]string `mapstructure:"cell_type_samples" yaml:"cell_type_samples,omitempty"`
}

func defaultTrimSuffixes() []string {
	return []string{"_regions_genes_with_cell_types", "_regions_genes"}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.spatialprep/config.yaml, creating the directory
// if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".spatialprep")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SPATIALPREP")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_dir", filepath.Join("data", "csvs"))
	v.SetDefault("out_dir", "data")
	v.SetDefault("file_ext", ".csv")
	v.SetDefault("stride", 10)
	v.SetDefault("gzip", false)
	v.SetDefault("label_trim_suffixes", defaultTrimSuffixes())
	v.SetDefault("cell_types_dir", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".spatialprep")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Stride < 1 {
		return nil, fmt.Errorf("stride must be >= 1, got %d", c.Stride)
	}
	return &c, nil
}
