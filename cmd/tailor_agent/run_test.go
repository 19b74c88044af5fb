package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantError   bool
		errorString string
	}{
		{
			name:        "Missing resume",
			args:        []string{"run", "--job", "testdata/job.txt"},
			wantError:   true,
			errorString: "--resume is required",
		},
		{
			name:        "Missing job source",
			args:        []string{"run", "--resume", "testdata/resume.txt"},
			wantError:   true,
			errorString: "either --job or --job-url",
		},
		{
			name: "Job and job-url are mutually exclusive",
			args: []string{
				"run",
				"--resume", "testdata/resume.txt",
				"--job", "testdata/job.txt",
				"--job-url", "https://example.com/job",
			},
			wantError:   true,
			errorString: "mutually exclusive",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorString != "" {
					assert.Contains(t, string(output), tt.errorString)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
