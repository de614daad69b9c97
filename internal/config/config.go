package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CATERSERVE_*). Nested keys use a
// double underscore: CATERSERVE_STRIPE__SECRET_KEY -> stripe.secret_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables.
	if err := k.Load(env.Provider("CATERSERVE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "CATERSERVE_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Stripe.Currency != "" && len(c.Stripe.Currency) != 3 {
		return fmt.Errorf("invalid currency %q: must be a 3-letter ISO code", c.Stripe.Currency)
	}

	// The media credentials are all-or-nothing: a partial set means a typo,
	// not an intentionally disabled integration.
	set := 0
	for _, v := range []string{c.Media.CloudName, c.Media.APIKey, c.Media.APISecret} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("media config requires cloud_name, api_key, and api_secret together")
	}

	return nil
}

// TerminalEnabled reports whether the card-terminal proxy is configured.
func (c *Config) TerminalEnabled() bool {
	return c.Stripe.SecretKey != ""
}

// MediaEnabled reports whether the media-library proxy is configured.
func (c *Config) MediaEnabled() bool {
	return c.Media.CloudName != "" && c.Media.APIKey != "" && c.Media.APISecret != ""
}
