package llm

import (
	"context"
	"fmt"

	"github.com/clearuse/clearuse/internal/model"
)

// Explainer turns a finished report into a plain-language explanation. It
// runs strictly after assessment: nothing it produces feeds back into the
// verdict, and any failure degrades to a warning on the explanation record.
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates an explainer from configuration. Returns an error
// only for a misconfigured provider; an empty provider name yields a
// disabled explainer.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (e *Explainer) IsEnabled() bool {
	return e != nil && e.provider != nil
}

// Explain generates the explanation for a completed report. When disabled
// it returns (nil, nil).
func (e *Explainer) Explain(ctx context.Context, report model.Report) (*model.Explanation, error) {
	if !e.IsEnabled() {
		return nil, nil
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Report:    report,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate explanation: %w", err)
	}

	return &model.Explanation{
		Enabled:  true,
		Provider: e.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}, nil
}
