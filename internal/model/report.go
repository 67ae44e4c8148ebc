package model

import "time"

// Report is the complete analysis for one file: provenance, copyright
// status, fair-use verdict and (when consulted) alternative suggestions.
type Report struct {
	FileName  string    `json:"file_name"`
	Path      string    `json:"path"`
	CheckedAt time.Time `json:"checked_at"`

	Context UsageContext `json:"context"`

	Source    SourceInfo      `json:"source"`
	Copyright CopyrightStatus `json:"copyright"`
	Verdict   FairUseVerdict  `json:"fair_use"`

	// Alternatives is populated only when the verdict is negative or the
	// status carries restrictions; nil means the suggester was not consulted.
	Alternatives *AlternativesResult `json:"alternatives,omitempty"`

	// Warnings aggregates collaborator degradations. The analysis always
	// produces some guidance; failures surface here instead of aborting.
	Warnings []string `json:"warnings,omitempty"`

	// LLM is an optional plain-language explanation, generated after the
	// verdict and never feeding back into it.
	LLM *Explanation `json:"llm,omitempty"`

	// FromCache marks a report served from the report cache.
	FromCache bool `json:"from_cache,omitempty"`
}

// Explanation is an optional LLM-generated restatement of the verdict.
// It never affects scoring and is kept clearly separated.
type Explanation struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Attribution builds a standard attribution line from known fields:
// "Title" by Author is licensed under X. Available at: URL.
func Attribution(author, title, licenseName, sourceURL string) string {
	if title == "" {
		title = "Work"
	}
	line := `"` + title + `"`
	if author != "" {
		line += " by " + author
	}
	if licenseName != "" {
		line += " is licensed under " + licenseName
	}
	if sourceURL != "" {
		line += ". Available at: " + sourceURL
	}
	return line
}
