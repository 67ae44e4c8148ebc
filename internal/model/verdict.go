package model

// Factor names used as keys in FairUseVerdict.Factors.
const (
	FactorPurpose      = "purpose"
	FactorNature       = "nature"
	FactorAmount       = "amount"
	FactorMarketEffect = "market_effect"
)

// FactorScore is one of the four statutory factors, scored in [0,1] with a
// qualitative label and the partial credits that produced the score.
type FactorScore struct {
	Score float64  `json:"score"`
	Label string   `json:"label"`           // thresholded wording, e.g. "strongly favors fair use"
	Notes []string `json:"notes,omitempty"` // contributing signals, one per credit
}

// FairUseVerdict is the engine's advisory classification. Constructed fresh
// per assessment; the engine keeps no state between calls.
type FairUseVerdict struct {
	CanUse     bool       `json:"can_use"`
	Confidence Confidence `json:"confidence"`

	// OpenContent marks the fast path: public-domain or openly licensed
	// content never runs the four-factor analysis, so Factors stays empty.
	OpenContent bool `json:"open_content"`

	Factors        map[string]FactorScore `json:"factors,omitempty"`
	AggregateScore float64                `json:"aggregate_score"`

	Recommendation string   `json:"recommendation"`
	Warnings       []string `json:"warnings,omitempty"`
	BestPractices  []string `json:"best_practices,omitempty"`
}
