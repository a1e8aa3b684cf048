// Package config loads and validates the sitegen build configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
)

// Config represents the application configuration
type Config struct {
	// SiteOrigin is the absolute URL prefix for every emitted <loc> and
	// JSON-LD url field. Usually supplied via the SITE_ORIGIN env var.
	SiteOrigin string `yaml:"site_origin"`

	// ContentRoot is the directory page artifacts and sitemaps are written
	// under.
	ContentRoot string `yaml:"content_root"`

	// CatalogDir holds the catalog YAML files. Empty means the embedded
	// default catalogs.
	CatalogDir string `yaml:"catalog_dir,omitempty"`

	// HistoryDB is the sqlite build-history database path. Empty disables
	// history recording.
	HistoryDB string `yaml:"history_db,omitempty"`

	// Strict escalates per-page template failures to build failures.
	Strict bool `yaml:"strict"`

	Policy  InclusionPolicy `yaml:"policy"`
	Sitemap SitemapConfig   `yaml:"sitemap"`
	Watch   WatchConfig     `yaml:"watch"`
}

// InclusionPolicy controls which catalog combinations are admitted into the
// page manifest and how heavily they are capped. All caps are configuration,
// never literals in generation code.
type InclusionPolicy struct {
	// MaxSuburbsPerCity caps suburb lists in generated sections and
	// service-area enumeration.
	MaxSuburbsPerCity int `yaml:"max_suburbs_per_city"`

	// MaxServicesPerCombination caps how many services each city gets a
	// combination page for.
	MaxServicesPerCombination int `yaml:"max_services_per_combination"`

	// MaxCostGuideCities caps how many cities receive cost-guide pages.
	MaxCostGuideCities int `yaml:"max_cost_guide_cities"`

	// MaxPages is the hard ceiling on admitted manifest entries. Exceeding
	// it aborts the build rather than emitting an unbounded page set.
	MaxPages int `yaml:"max_pages"`

	// Kinds restricts which page kinds are generated. Empty means all.
	Kinds []string `yaml:"kinds,omitempty"`
}

// SitemapConfig bounds sitemap shard size.
type SitemapConfig struct {
	// MaxURLsPerShard is the per-shard URL ceiling. The sitemaps.org
	// protocol allows at most 50,000.
	MaxURLsPerShard int `yaml:"max_urls_per_shard"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Interval is an optional cron-less rebuild period, e.g. "30m".
	Interval string `yaml:"interval,omitempty"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":9190".
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// DebounceMillis collapses bursts of catalog file events.
	DebounceMillis int `yaml:"debounce_millis,omitempty"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env if present so SITE_ORIGIN and friends expand below.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, builderrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryConfig, builderrors.SeverityFatal, "failed to read config file")
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryConfig, builderrors.SeverityFatal, "failed to unmarshal config")
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with every default applied, suitable for
// the no-argument build invocation.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SiteOrigin == "" {
		c.SiteOrigin = os.Getenv("SITE_ORIGIN")
	}
	if c.SiteOrigin == "" {
		c.SiteOrigin = "https://disasterrecovery.com.au"
	}
	if c.ContentRoot == "" {
		c.ContentRoot = "./public"
	}
	if c.Policy.MaxSuburbsPerCity == 0 {
		c.Policy.MaxSuburbsPerCity = 6
	}
	if c.Policy.MaxServicesPerCombination == 0 {
		c.Policy.MaxServicesPerCombination = 10
	}
	if c.Policy.MaxCostGuideCities == 0 {
		c.Policy.MaxCostGuideCities = 10
	}
	if c.Policy.MaxPages == 0 {
		c.Policy.MaxPages = 25000
	}
	if c.Sitemap.MaxURLsPerShard == 0 {
		c.Sitemap.MaxURLsPerShard = 50000
	}
	if c.Watch.DebounceMillis == 0 {
		c.Watch.DebounceMillis = 500
	}
}

// Validate checks invariants the rest of the pipeline relies on.
func (c *Config) Validate() error {
	if c.SiteOrigin == "" {
		return builderrors.ConfigRequired("site_origin")
	}
	if c.Policy.MaxPages < 1 {
		return builderrors.New(builderrors.CategoryConfig, builderrors.SeverityFatal, "policy.max_pages must be positive")
	}
	if c.Sitemap.MaxURLsPerShard < 1 || c.Sitemap.MaxURLsPerShard > 50000 {
		return builderrors.New(builderrors.CategoryConfig, builderrors.SeverityFatal, "sitemap.max_urls_per_shard must be in 1..50000")
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.SiteOrigin = "${SITE_ORIGIN}"
	example.HistoryDB = ".sitegen/history.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := "# sitegen configuration\n# SITE_ORIGIN is expanded from the environment (or .env).\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
