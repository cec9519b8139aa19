// Package config loads the indexer's on-disk configuration (spec
// SPEC_FULL.md §1.2): the policy flag, a list of file extensions, an
// output format name, and the stats switch.
// Values follow the functional-options shape pkg/xref exposes in code;
// this package only concerns itself with the YAML file on disk.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the on-disk shape of a cxxindex config file.
type Config struct {
	// IgnoreUnimplemented mirrors diag.Policy.IgnoreUnimplemented
	// (default true): when false, the first unimplemented AST/type
	// construct aborts indexing with an error instead of being
	// counted and skipped.
	IgnoreUnimplemented *bool `yaml:"ignoreUnimplemented,omitempty"`

	// Extensions lists file suffixes (".cc", ".cpp", ".h", ...). It is
	// loaded and shown by the config command; the index command, which
	// takes a single file argument, does not consult it.
	Extensions []string `yaml:"extensions,omitempty"`

	// Output names a result encoding ("json" or "pretty"). The index
	// command does not consult it and always writes pretty-printed JSON.
	Output string `yaml:"output,omitempty"`

	// Stats, when true, has the CLI print the unimplemented-construct
	// counter snapshot (SPEC_FULL.md §4's statistics supplement)
	// alongside the indexing result.
	Stats bool `yaml:"stats,omitempty"`
}

// Default returns the configuration the CLI uses when no config file
// is present.
func Default() Config {
	return Config{
		Extensions: []string{".cc", ".cxx", ".cpp", ".h", ".hh", ".hpp"},
		Output:     "pretty",
	}
}

// Load reads and parses a YAML config file at path. A missing file is
// not an error; Load returns Default() for it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// IgnoreUnimplementedOrDefault returns the configured flag, or true
// (the policy default) when the file left it unset.
func (c Config) IgnoreUnimplementedOrDefault() bool {
	if c.IgnoreUnimplemented == nil {
		return true
	}
	return *c.IgnoreUnimplemented
}

// Marshal renders cfg back to YAML, used by the CLI's `config` "show
// effective configuration" subcommand.
func Marshal(c Config) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}
