// Package rdocconfig loads the user config file (~/.rdoc/config.yaml):
// theme, source priority overrides, offline flag, and search result
// count, with WithDefaults filling any zero-valued field from Defaults,
// in YAML since the config format here is otherwise unconstrained.
package rdocconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rdoc/internal/logging"
)

// Config is the single source of truth for rdoc's user-level settings.
type Config struct {
	// Theme selects the TTY/interactive color palette by name (§4.I
	// DefaultPalette, §4.1 ThemePicker).
	Theme string `yaml:"theme,omitempty"`

	// SourcePriority overrides the default Std > Local > Remote
	// dispatch order (§4.D). Entries are source names; an empty list
	// means "use the default order."
	SourcePriority []string `yaml:"source_priority,omitempty"`

	// Offline disables the Remote source regardless of --offline
	// being passed on the command line.
	Offline bool `yaml:"offline,omitempty"`

	// SearchResultCount is loaded, defaulted and saved with the rest of
	// the config. No other package reads it: ResolvePath's similarity ranking
	// always returns at most 5 suggestions.
	SearchResultCount int `yaml:"search_result_count,omitempty"`

	// RegistryHost / DocsHost override the crates.io-shaped registry
	// and docs hosts the Remote source talks to (§4.E).
	RegistryHost string `yaml:"registry_host,omitempty"`
	DocsHost     string `yaml:"docs_host,omitempty"`

	// Logging mirrors internal/logging.Config; duplicated at the
	// call site would create an import cycle, so rdocconfig embeds
	// the same yaml-tagged shape logging already exports.
	Logging logging.Config `yaml:"logging,omitempty"`
}

const (
	defaultSearchResultCount = 8
	defaultTheme             = "dark"
)

// Defaults returns a Config populated with rdoc's built-in defaults.
func Defaults() Config {
	return Config{
		Theme:             defaultTheme,
		SourcePriority:    []string{"std", "local", "remote"},
		SearchResultCount: defaultSearchResultCount,
		RegistryHost:      "crates.io",
		DocsHost:          "docs.rs",
	}
}

// WithDefaults fills zero-valued fields of c with Defaults(), leaving
// anything the user explicitly set untouched.
func (c Config) WithDefaults() Config {
	def := Defaults()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if len(c.SourcePriority) == 0 {
		c.SourcePriority = def.SourcePriority
	}
	if c.SearchResultCount == 0 {
		c.SearchResultCount = def.SearchResultCount
	}
	if c.RegistryHost == "" {
		c.RegistryHost = def.RegistryHost
	}
	if c.DocsHost == "" {
		c.DocsHost = def.DocsHost
	}
	return c
}

// DefaultPath returns ~/.rdoc/config.yaml, falling back to
// ./.rdoc/config.yaml if the home directory can't be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rdoc", "config.yaml")
	}
	return filepath.Join(home, ".rdoc", "config.yaml")
}

// DefaultRoot returns ~/.rdoc, the directory logging and remotecache
// both nest their own subdirectories under.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rdoc"
	}
	return filepath.Join(home, ".rdoc")
}

// Load reads and parses the config file at path. A missing file is not
// an error: it returns Defaults().WithDefaults().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults().WithDefaults(), nil
		}
		return Config{}, fmt.Errorf("rdocconfig: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rdocconfig: parsing %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

// Save writes cfg to path as YAML, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("rdocconfig: creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("rdocconfig: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rdocconfig: writing %s: %w", path, err)
	}
	return nil
}
