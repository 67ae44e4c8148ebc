package alternatives

import (
	"context"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// searchTermsLimit caps how long the combined Commons query can get.
const searchTermsLimit = 100

// Finder assembles alternative suggestions: the static catalog for the
// content type, specific matches from Wikimedia Commons, and the curated
// educational sources. The Commons search and link verification are both
// optional collaborators.
type Finder struct {
	wikimedia *WikimediaClient
	verifier  *Verifier
}

// NewFinder creates a finder. Either collaborator may be nil, which skips
// that step.
func NewFinder(wikimedia *WikimediaClient, verifier *Verifier) *Finder {
	return &Finder{wikimedia: wikimedia, verifier: verifier}
}

// Find suggests substitutes for the given source. Remote failures never
// fail the call: the result degrades to the static catalog and records why.
func (f *Finder) Find(ctx context.Context, src model.SourceInfo) model.AlternativesResult {
	result := model.AlternativesResult{
		Items: Catalog(src.ContentType),
	}

	if f.wikimedia != nil && src.ContentType == model.ContentImage {
		query := searchTerms(src)
		if query != "" {
			result.Searched = true
			matches, err := f.wikimedia.Search(ctx, query)
			if err != nil {
				result.Failed = true
				result.Reason = err.Error()
			} else {
				result.Items = append(result.Items, matches...)
			}
		}
	}

	result.Items = append(result.Items, Educational(src.ContentType)...)

	if f.verifier != nil {
		f.verifier.Verify(ctx, result.Items)
	}

	return result
}

// FindByTopic suggests sources for a topic rather than a concrete file.
func (f *Finder) FindByTopic(ctx context.Context, topic string, kind model.ContentType) model.AlternativesResult {
	result := model.AlternativesResult{
		Items: Catalog(kind),
	}

	if f.wikimedia != nil && kind == model.ContentImage && strings.TrimSpace(topic) != "" {
		result.Searched = true
		matches, err := f.wikimedia.Search(ctx, topic)
		if err != nil {
			result.Failed = true
			result.Reason = err.Error()
		} else {
			result.Items = append(result.Items, matches...)
		}
	}

	result.Items = append(result.Items, Educational(kind)...)

	if f.verifier != nil {
		f.verifier.Verify(ctx, result.Items)
	}

	return result
}

// searchTerms builds a Commons query from whatever the extractor found.
func searchTerms(src model.SourceInfo) string {
	var terms []string
	if src.Title != "" {
		terms = append(terms, src.Title)
	}
	if src.Author != "" {
		terms = append(terms, src.Author)
	}
	if src.Subject != "" {
		terms = append(terms, src.Subject)
	}

	query := strings.Join(terms, " ")
	if len(query) > searchTermsLimit {
		query = query[:searchTermsLimit]
	}
	return strings.TrimSpace(query)
}
