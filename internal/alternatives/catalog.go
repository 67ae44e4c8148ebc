package alternatives

import "github.com/clearuse/clearuse/internal/model"

// Static catalogs of openly licensed content sources. These are always
// suggested alongside any specific matches, keyed by content type.

var imageCatalog = []model.AlternativeSource{
	{Source: "Wikimedia Commons", URL: "https://commons.wikimedia.org", License: "Various Creative Commons and Public Domain", Kind: model.AlternativeGeneral},
	{Source: "Unsplash", URL: "https://unsplash.com", License: "Unsplash License (Free for commercial and non-commercial use)", Kind: model.AlternativeGeneral},
	{Source: "Pexels", URL: "https://pexels.com", License: "Pexels License (Free)", Kind: model.AlternativeGeneral},
	{Source: "Pixabay", URL: "https://pixabay.com", License: "Pixabay License (Free)", Kind: model.AlternativeGeneral},
	{Source: "NASA Image Gallery", URL: "https://images.nasa.gov", License: "Public Domain (most images)", Kind: model.AlternativeGeneral},
	{Source: "Library of Congress", URL: "https://www.loc.gov/pictures/", License: "Many public domain images", Kind: model.AlternativeGeneral},
}

var documentCatalog = []model.AlternativeSource{
	{Source: "Project Gutenberg", URL: "https://www.gutenberg.org", License: "Public Domain", Description: "70,000+ free ebooks", Kind: model.AlternativeGeneral},
	{Source: "Open Textbook Library", URL: "https://open.umn.edu/opentextbooks", License: "Creative Commons", Description: "Free, peer-reviewed textbooks", Kind: model.AlternativeGeneral},
	{Source: "OpenStax", URL: "https://openstax.org", License: "Creative Commons BY", Description: "Free textbooks for college courses", Kind: model.AlternativeGeneral},
	{Source: "MIT OpenCourseWare", URL: "https://ocw.mit.edu", License: "Creative Commons BY-NC-SA", Description: "Course materials from MIT", Kind: model.AlternativeGeneral},
	{Source: "OER Commons", URL: "https://www.oercommons.org", License: "Various open licenses", Description: "Open Educational Resources", Kind: model.AlternativeGeneral},
	{Source: "Internet Archive", URL: "https://archive.org", License: "Various, including Public Domain", Description: "Digital library of books, media, and more", Kind: model.AlternativeGeneral},
}

var imageEducational = []model.AlternativeSource{
	{Source: "Smithsonian Open Access", URL: "https://www.si.edu/openaccess", License: "CC0 (Public Domain)", Description: "3+ million images from Smithsonian museums", Kind: model.AlternativeEducational},
	{Source: "Metropolitan Museum of Art", URL: "https://www.metmuseum.org/art/collection", License: "CC0 (Public Domain) for many works", Description: "400,000+ artworks with open access", Kind: model.AlternativeEducational},
	{Source: "Europeana", URL: "https://www.europeana.eu", License: "Various open licenses", Description: "European cultural heritage collections", Kind: model.AlternativeEducational},
}

var documentEducational = []model.AlternativeSource{
	{Source: "MERLOT", URL: "https://www.merlot.org", License: "Various open licenses", Description: "Curated collection of free educational materials", Kind: model.AlternativeEducational},
	{Source: "Khan Academy", URL: "https://www.khanacademy.org", License: "Creative Commons BY-NC-SA", Description: "Free educational content and exercises", Kind: model.AlternativeEducational},
	{Source: "OpenLearn", URL: "https://www.open.edu/openlearn/", License: "Creative Commons BY-NC-SA", Description: "Free courses from The Open University", Kind: model.AlternativeEducational},
}

// Catalog returns the general open-content sources for a content type.
func Catalog(kind model.ContentType) []model.AlternativeSource {
	switch kind {
	case model.ContentImage:
		return appendSearchHint(cloneSources(imageCatalog))
	case model.ContentDocument:
		return cloneSources(documentCatalog)
	default:
		return nil
	}
}

// Educational returns the education-specific sources for a content type.
func Educational(kind model.ContentType) []model.AlternativeSource {
	switch kind {
	case model.ContentImage:
		return cloneSources(imageEducational)
	case model.ContentDocument:
		return cloneSources(documentEducational)
	default:
		return nil
	}
}

// AllSources returns every cataloged source grouped by content type. Used by
// the sources listing command and endpoint.
func AllSources() map[string][]model.AlternativeSource {
	return map[string][]model.AlternativeSource{
		"images":    append(cloneSources(imageCatalog), cloneSources(imageEducational)...),
		"documents": append(cloneSources(documentCatalog), cloneSources(documentEducational)...),
	}
}

// appendSearchHint fills in a generic description for image catalog entries.
func appendSearchHint(sources []model.AlternativeSource) []model.AlternativeSource {
	for i := range sources {
		if sources[i].Description == "" {
			sources[i].Description = "Search " + sources[i].Source + " for similar images"
		}
	}
	return sources
}

// cloneSources copies a catalog so callers can annotate entries without
// mutating the package-level tables.
func cloneSources(src []model.AlternativeSource) []model.AlternativeSource {
	out := make([]model.AlternativeSource, len(src))
	copy(out, src)
	return out
}
