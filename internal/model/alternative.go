package model

// AlternativeKind distinguishes how a suggestion was produced.
type AlternativeKind string

const (
	AlternativeGeneral     AlternativeKind = "general_resource"     // static catalog entry
	AlternativeSpecific    AlternativeKind = "specific_match"       // remote search hit
	AlternativeEducational AlternativeKind = "educational_specific" // curated educational source
)

// AlternativeSource is one openly licensed substitute suggestion.
type AlternativeSource struct {
	Source      string          `json:"source"`
	Title       string          `json:"title,omitempty"`
	URL         string          `json:"url"`
	FileURL     string          `json:"file_url,omitempty"` // direct media URL for specific matches
	License     string          `json:"license"`
	Description string          `json:"description,omitempty"`
	Kind        AlternativeKind `json:"kind"`

	// Verified is set by the optional link check: nil = not checked.
	Verified *bool `json:"verified,omitempty"`
}

// AlternativesResult separates "no alternatives exist" from "lookup failed".
// Remote failures degrade to the static catalog, never to a hard error.
type AlternativesResult struct {
	Items []AlternativeSource `json:"items"`

	// Searched is true when a remote search ran (as opposed to catalog-only).
	Searched bool `json:"searched"`

	// Failed is true when the remote search was attempted and did not
	// complete; Reason says why. Items still carries the static fallback.
	Failed bool   `json:"failed,omitempty"`
	Reason string `json:"reason,omitempty"`
}
