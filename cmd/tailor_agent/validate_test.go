package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --doc flag",
			args:        []string{"validate", "--resume", "r.txt", "--job", "j.txt"},
			errorString: "required",
		},
		{
			name:        "Missing --resume flag",
			args:        []string{"validate", "--doc", "d.json", "--job", "j.txt"},
			errorString: "required",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestValidateCommand_GroundedDocument(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	jobPath := filepath.Join(dir, "job.txt")
	docPath := filepath.Join(dir, "doc.json")

	require.NoError(t, os.WriteFile(resumePath, []byte("Shipped Go services at scale."), 0o644))
	require.NoError(t, os.WriteFile(jobPath, []byte("We need a Go engineer."), 0o644))

	doc := types.ResumeDocument{
		Name: "Jane Doe",
		Sections: []types.ResumeSection{
			{
				Name: "Experience",
				Items: []types.ResumeItem{
					{
						Bullets: []types.ResumeBullet{
							{
								Text: "Shipped Go services",
								EvidenceSpans: []types.EvidenceSpan{
									{Source: types.SourceResume, Start: 0, End: 19},
								},
								MatchedTerms: []string{"Go"},
							},
						},
					},
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(docPath, data, 0o644))

	cmd := exec.Command(binaryPath, "validate",
		"--doc", docPath, "--resume", resumePath, "--job", jobPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Contains(t, string(output), "ALL EVIDENCE SPANS GROUNDED")
}
