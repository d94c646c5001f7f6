// Package llm wraps the Gemini API for skill extraction and project
// suggestions.
package llm

// ModelTier selects a model by workload.
type ModelTier string

const (
	// TierLite serves short free text such as project ideas.
	TierLite ModelTier = "lite"
	// TierStandard serves structured skill extraction.
	TierStandard ModelTier = "standard"
)

// Provider names an LLM backend.
type Provider string

const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps extraction output stable across runs.
const DefaultTemperature float32 = 0.1

// Config holds per-tier model names.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// Model returns the model for tier, falling back to the standard tier.
func (c *Config) Model(tier ModelTier) string {
	if m, ok := c.Models[tier]; ok && m != "" {
		return m
	}
	return c.Models[TierStandard]
}

// WithModel returns a copy of c using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
