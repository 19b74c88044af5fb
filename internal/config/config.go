// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Source texts
	Resume string `json:"resume,omitempty"`  // Path to resume text file
	Job    string `json:"job,omitempty"`     // Path to job posting text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job posting from
	Extra  string `json:"extra,omitempty"`   // Path to additional background text

	// Session labels
	Company   string `json:"company,omitempty"`    // Company name for the session record
	RoleTitle string `json:"role_title,omitempty"` // Role title for the session record

	// Behavior
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key
	UseBrowser   bool   `json:"use_browser,omitempty"`   // Use headless browser for SPA job boards
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information
	CoverLetter  bool   `json:"cover_letter,omitempty"`  // Also generate a tailored cover letter
	ForceOnePage bool   `json:"force_one_page,omitempty"`
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ChromePath   string `json:"chrome_path,omitempty"`  // Path to the Chrome binary for PDF printing
	OutDir       string `json:"out_dir,omitempty"`      // Directory for rendered artifacts

	// Limits
	MaxRegenerations int `json:"max_regenerations,omitempty"` // One-page hint regenerations before the fitting ladder
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.MaxRegenerations < 0 {
		return fmt.Errorf("config error: 'max_regenerations' must be non-negative")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"resume": c.Resume,
		"job":    c.Job,
		"extra":  c.Extra,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Extra == "" {
		result.Extra = defaults.Extra
	}
	if result.Company == "" {
		result.Company = defaults.Company
	}
	if result.RoleTitle == "" {
		result.RoleTitle = defaults.RoleTitle
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}

	// Int fields: use default if zero
	if result.MaxRegenerations == 0 {
		result.MaxRegenerations = defaults.MaxRegenerations
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
