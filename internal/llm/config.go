// Package llm wraps the Gemini API behind a small client interface so the
// generation layer can be tested against fakes and the provider swapped
// without touching callers.
package llm

// ModelTier selects how much model capability a call pays for
type ModelTier string

const (
	// TierLite handles extraction tasks like pulling key terms out of a posting
	TierLite ModelTier = "lite"
	// TierAdvanced handles document generation, where output quality dominates cost
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers onto concrete Gemini model names
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock tier-to-model mapping
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to its model name, falling back to the lite
// model when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier remapped
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
