package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a plain-language explanation of an assessment
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for explanation generation
type ExplainRequest struct {
	// Report is the completed check to explain. The verdict in it is final:
	// the explanation is generated after assessment and never alters it.
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the LLM's explanation output
type ExplainResponse struct {
	// Text is the generated explanation
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 500,
	}
}

// BuildPrompt constructs the default explanation prompt. The model is given
// the already-computed verdict and asked to restate it for a non-lawyer; it
// is explicitly told not to second-guess the outcome.
func BuildPrompt(report model.Report) string {
	var b strings.Builder

	b.WriteString(`You are explaining a fair-use assessment of educational course material to an instructor with no legal background.

CRITICAL RULES:
1. The verdict below is final. Restate and explain it; never contradict or re-score it.
2. Do not give legal advice. Describe what the assessment found.
3. Keep it to 3-4 plain sentences.

Assessment:
`)

	fmt.Fprintf(&b, "- File: %s\n", report.FileName)
	fmt.Fprintf(&b, "- License: %s\n", report.Copyright.LicenseName)
	fmt.Fprintf(&b, "- Can use: %t (confidence: %s)\n", report.Verdict.CanUse, report.Verdict.Confidence)
	if !report.Verdict.OpenContent {
		fmt.Fprintf(&b, "- Aggregate score: %.2f\n", report.Verdict.AggregateScore)
		for _, name := range []string{model.FactorPurpose, model.FactorNature, model.FactorAmount, model.FactorMarketEffect} {
			if f, ok := report.Verdict.Factors[name]; ok {
				fmt.Fprintf(&b, "- Factor %s: %.2f (%s)\n", name, f.Score, f.Label)
			}
		}
	}
	fmt.Fprintf(&b, "- Recommendation: %s\n", report.Verdict.Recommendation)
	for _, w := range report.Verdict.Warnings {
		fmt.Fprintf(&b, "- Warning: %s\n", w)
	}

	b.WriteString("\nExplain what this means for using the material in the course.")

	return b.String()
}
