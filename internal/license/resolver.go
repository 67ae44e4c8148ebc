package license

import (
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// Resolver normalizes raw extraction output into a CopyrightStatus. It owns
// every text heuristic: Creative Commons token detection, copyright-notice
// parsing, the public-domain heuristic and source-domain hints. The
// assessment engine downstream never pattern-matches strings itself.
type Resolver struct{}

// NewResolver creates a new resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve derives the copyright status for extracted source info. It always
// returns a valid record: when nothing conclusive is found the status
// defaults to assume-all-rights-reserved with Low confidence, so unknown
// content never looks safer than known-restricted content.
func (r *Resolver) Resolve(src model.SourceInfo) model.CopyrightStatus {
	// Everything worth scanning: leading document text, then raw
	// rights/license metadata fields, then harvested notices.
	haystack := joinScannable(src)

	status := model.CopyrightStatus{Confidence: model.ConfidenceLow}

	// Copyright notices give us holder, year and an explicit
	// all-rights-reserved marker.
	scan := scanNotices(haystack)
	if scan.Holder != "" {
		status.Holder = scan.Holder
		status.Confidence = model.ConfidenceMedium
	}
	if scan.Year > 0 {
		status.Year = model.IntPtr(scan.Year)
	}
	status.Notices = append(status.Notices, scan.Notices...)
	if scan.AllRightsReserved {
		status.Class = model.ClassAllRightsReserved
		status.LicenseName = "All Rights Reserved"
		status.CommercialUseAllowed = model.BoolPtr(false)
		status.ModificationsAllowed = model.BoolPtr(false)
		status.Restrictions = []string{"All rights reserved by copyright holder"}
		status.Confidence = model.ConfidenceHigh
	}

	// Holder fallback: document author metadata.
	if status.Holder == "" && src.Author != "" {
		status.Holder = src.Author
	}

	// Creative Commons tokens override an all-rights-reserved notice: a CC
	// mark is a grant, boilerplate notices often coexist with it.
	if cc, ok := DetectCC(haystack); ok {
		cc.Holder = status.Holder
		cc.Year = status.Year
		cc.Notices = append(cc.Notices, status.Notices...)
		if cc.Holder != "" && cc.CC != nil && cc.CC.Attribution {
			cc.AttributionText = model.Attribution(cc.Holder, src.Title, cc.CC.Code(), src.OriginalURL)
		}
		status = cc
	}

	// Source-domain hints fill in only when text evidence was inconclusive.
	if status.Class == model.ClassUnknown || status.Class == "" {
		if hint, ok := DomainHint(src.OriginalURL); ok {
			hint.Holder = status.Holder
			hint.Year = status.Year
			hint.Notices = append(hint.Notices, status.Notices...)
			status = hint
		}
	}

	// Public-domain heuristic overrides everything below High confidence:
	// an explicit dedication or a pre-1928 publication year clears all
	// restrictions.
	if !status.IsPublicDomain && status.Confidence != model.ConfidenceHigh && isPublicDomain(haystack) {
		status.Class = model.ClassPublicDomain
		status.LicenseName = "Public Domain"
		status.IsPublicDomain = true
		status.CommercialUseAllowed = model.BoolPtr(true)
		status.ModificationsAllowed = model.BoolPtr(true)
		status.AttributionRequired = model.BoolPtr(false)
		status.Restrictions = nil
		status.Confidence = model.ConfidenceHigh
	}
	if status.Class == model.ClassPublicDomain {
		status.IsPublicDomain = true
	}

	// Conservative default when no license evidence was found at all. A
	// mixed-host hint (named license but unresolved class) keeps its name
	// and restrictions; the conservative flags still apply.
	if status.Class == model.ClassUnknown || status.Class == "" {
		status.Class = model.ClassUnknown
		if status.LicenseName == "" {
			status.LicenseName = "Unknown - Assume All Rights Reserved"
		}
		status.CommercialUseAllowed = model.BoolPtr(false)
		status.ModificationsAllowed = model.BoolPtr(false)
		if len(status.Restrictions) == 0 {
			if src.ContentType == model.ContentImage {
				status.Restrictions = []string{
					"Copyright status unknown",
					"Assume full copyright protection",
					"Seek permission before use",
				}
			} else {
				status.Restrictions = []string{
					"No clear license identified",
					"Assume full copyright protection",
					"May require permission for educational use",
				}
			}
		}
	}

	return status
}

// joinScannable concatenates every text field worth scanning for license
// and copyright evidence.
func joinScannable(src model.SourceInfo) string {
	parts := make([]string, 0, 4+len(src.CopyrightFields)+len(src.CopyrightNotices))
	if src.TextSample != "" {
		parts = append(parts, src.TextSample)
	}
	parts = append(parts, src.CopyrightFields...)
	parts = append(parts, src.CopyrightNotices...)
	if src.Subject != "" {
		parts = append(parts, src.Subject)
	}
	return strings.Join(parts, "\n")
}
