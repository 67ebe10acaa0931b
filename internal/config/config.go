// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMinSimilarity is the threshold used when neither the config file nor
// the command line sets one.
const DefaultMinSimilarity = 0.7

// DatabaseURLEnv names the environment variable consulted for the database URL.
const DatabaseURLEnv = "DATABASE_URL"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Dataset string `json:"dataset,omitempty"` // Path to input CSV with jobid and coding columns
	Output  string `json:"output,omitempty"`  // Path to output CSV of similar pairs
	Summary string `json:"summary,omitempty"` // Path to JSON run summary

	// Limits
	Take          int      `json:"take,omitempty" validate:"gte=0"`                           // Only consider the first N jobs (0 = all)
	MinSimilarity *float64 `json:"min_similarity,omitempty" validate:"omitempty,gte=0,lte=1"` // Pairs must score strictly above this

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`                               // Print progress and summaries
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,url"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors match the config file
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Output != "" && c.Output == c.Summary {
		return fmt.Errorf("config error: 'output' and 'summary' must be different files")
	}

	// Validate file paths exist (if specified)
	if c.Dataset != "" {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.Dataset)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Summary == "" {
		result.Summary = defaults.Summary
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv(DatabaseURLEnv)
	}

	// Int fields: use default if zero
	if result.Take == 0 {
		result.Take = defaults.Take
	}

	// Float fields: nil means unset
	if result.MinSimilarity == nil {
		if defaults.MinSimilarity != nil {
			v := *defaults.MinSimilarity
			result.MinSimilarity = &v
		} else {
			v := DefaultMinSimilarity
			result.MinSimilarity = &v
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Threshold returns the configured minimum similarity, or the default when unset.
func (c *Config) Threshold() float64 {
	if c.MinSimilarity == nil {
		return DefaultMinSimilarity
	}
	return *c.MinSimilarity
}
