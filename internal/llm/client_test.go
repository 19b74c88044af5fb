package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Bare JSON untouched",
			input: `{"name": "Jane"}`,
			want:  `{"name": "Jane"}`,
		},
		{
			name:  "JSON fence with language tag",
			input: "```json\n{\"name\": \"Jane\"}\n```",
			want:  `{"name": "Jane"}`,
		},
		{
			name:  "Fence without language tag",
			input: "```\n[\"Go\", \"gRPC\"]\n```",
			want:  `["Go", "gRPC"]`,
		},
		{
			name:  "Surrounding whitespace trimmed",
			input: "  \n```json\n{}\n```\n  ",
			want:  "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.input))
		})
	}
}

func TestConfig_GetModel(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	// Unknown tiers fall back to the lite model.
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(ModelTier("unknown")))
}

func TestConfig_WithModel(t *testing.T) {
	cfg := DefaultConfig()
	override := cfg.WithModel(TierAdvanced, "gemini-2.5-flash")

	assert.Equal(t, "gemini-2.5-flash", override.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
}
