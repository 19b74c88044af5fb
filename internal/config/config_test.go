package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"job_url": "https://example.com/job",
		"company": "Acme Corp",
		"role_title": "Senior Go Engineer",
		"cover_letter": true,
		"max_regenerations": 2,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "Acme Corp", cfg.Company)
	assert.Equal(t, "Senior Go Engineer", cfg.RoleTitle)
	assert.True(t, cfg.CoverLetter)
	assert.Equal(t, 2, cfg.MaxRegenerations)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_JobAndJobURLExclusive(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("job"), 0644))

	cfg := &Config{Job: tmpFile, JobURL: "https://example.com/job"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_MissingSourceFile(t *testing.T) {
	cfg := &Config{Resume: "/nonexistent/resume.txt"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_NegativeRegenerations(t *testing.T) {
	cfg := &Config{MaxRegenerations: -1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_regenerations")
}

func TestValidate_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		JobURL:  "https://example.com/job",
		Company: "Acme Corp",
	}
	defaults := Config{
		Company:          "Ignored Inc",
		RoleTitle:        "Engineer",
		APIKey:           "default-key",
		DatabaseURL:      "postgres://localhost/tailor",
		MaxRegenerations: 1,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win
	assert.Equal(t, "Acme Corp", merged.Company)
	// Empty values fall back to defaults
	assert.Equal(t, "Engineer", merged.RoleTitle)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "postgres://localhost/tailor", merged.DatabaseURL)
	assert.Equal(t, 1, merged.MaxRegenerations)
}
