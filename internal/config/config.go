// =============================================================================
// i18ngen - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file, applies defaults,
// validates, and finally applies environment overrides (a local .env file is
// honored when present, so CI and developers can redirect the output
// locations without editing the config file).
//
// The config file itself is optional: a missing file yields the defaults,
// since the common case is running the tool next to the firmware tree with
// the standard layout.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/chronoslabs/i18ngen/internal/tabular"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// OutputDir is the directory the generated sources are written to.
	// Default: "." (the firmware's intl directory in practice).
	OutputDir string `yaml:"output_dir"`

	// ReportDir is the directory merge summary reports are written to.
	// Empty disables report files; the console summary is always printed.
	ReportDir string `yaml:"report_dir"`

	// NoBackup disables the timestamped aside-backup of previously
	// generated files before overwriting. Default: backups on.
	NoBackup bool `yaml:"no_backup"`

	// Tabular contains settings for reading the spreadsheet input.
	Tabular tabular.Settings `yaml:"csv_settings"`

	// Merge holds the default merge policy, overridable per run by flags.
	Merge MergeDefaults `yaml:"merge_defaults"`
}

// MergeDefaults is the merge policy as configured, before flag overrides.
type MergeDefaults struct {
	// Prefer is the conflict policy for non-empty cells: "csv" (the
	// spreadsheet wins ties) or "existing" (the generated table wins).
	// Default: "csv".
	Prefer string `yaml:"prefer"`

	// OverwriteAll overwrites existing values even when the spreadsheet
	// cell is empty. Dangerous; default false.
	OverwriteAll bool `yaml:"overwrite_all"`

	// DropOrphans removes keys present only in the existing table.
	DropOrphans bool `yaml:"drop_orphans"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, falling back to defaults when the file
// does not exist. Environment overrides are applied last.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// Optional file; defaults apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Tabular.Delimiter == "" {
		cfg.Tabular.Delimiter = ","
	}
	if cfg.Tabular.Encoding == "" {
		cfg.Tabular.Encoding = "UTF-8"
	}
	if cfg.Merge.Prefer == "" {
		cfg.Merge.Prefer = "csv"
	}
}

// applyEnvOverrides loads a local .env file when present and applies
// I18NGEN_* environment variables on top of the file configuration.
func applyEnvOverrides(cfg *Config) {
	// .env is optional; variables may come from the environment directly.
	_ = godotenv.Load()

	if v := os.Getenv("I18NGEN_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("I18NGEN_REPORT_DIR"); v != "" {
		cfg.ReportDir = v
	}
}

// validate applies the configuration invariants.
func validate(cfg *Config) error {
	if cfg.Merge.Prefer != "csv" && cfg.Merge.Prefer != "existing" {
		return fmt.Errorf("merge_defaults.prefer must be 'csv' or 'existing', got %q", cfg.Merge.Prefer)
	}
	return nil
}
