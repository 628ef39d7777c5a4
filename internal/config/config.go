package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIndexURL is the serial's table-of-contents page.
const DefaultIndexURL = "https://parahumans.wordpress.com/table-of-contents/"

type Config struct {
	Output    string  `yaml:"output"`
	Format    string  `yaml:"format"`
	IndexURL  string  `yaml:"index_url"`
	Seconds   float64 `yaml:"seconds"`
	Join      bool    `yaml:"join"`
	UserAgent string  `yaml:"user_agent"`
}

// Options carry the CLI flag values merged over the active config file.
type Options struct {
	IgnoreConfig bool
	Output       string
	Format       string
	IndexURL     string
	UserAgent    string
	Join         bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:    ".",
		Format:    "rtf",
		IndexURL:  DefaultIndexURL,
		Seconds:   1.0,
		Join:      false,
		UserAgent: "",
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadMerged resolves the effective configuration: defaults, then the
// active profile file, then the CLI flags on top. The returned path says
// where the file layer came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.IndexURL != "" {
		c.IndexURL = o.IndexURL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Join {
		c.Join = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Format == "" {
		c.Format = "rtf"
	}
	if c.IndexURL == "" {
		c.IndexURL = DefaultIndexURL
	}
	if c.Seconds < 0 {
		c.Seconds = 0
	}
}

func (c *Config) Print() {
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -format: %s\n", c.Format)
	fmt.Printf(" -index_url: %s\n", c.IndexURL)
	fmt.Printf(" -seconds: %g\n", c.Seconds)
	if c.Join {
		fmt.Printf(" -join: %t\n", c.Join)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
}
