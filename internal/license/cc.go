package license

import (
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// ccCode pairs a Creative Commons short code with its variant flags and
// long name. Ordered longest-first so "CC BY-NC-SA" is never shadowed by
// the "CC BY" prefix.
type ccCode struct {
	code    string
	name    string
	variant model.CCVariant
}

var ccCodes = []ccCode{
	{"CC BY-NC-SA", "Attribution-NonCommercial-ShareAlike", model.CCVariant{Attribution: true, NonCommercial: true, ShareAlike: true}},
	{"CC BY-NC-ND", "Attribution-NonCommercial-NoDerivs", model.CCVariant{Attribution: true, NonCommercial: true, NoDerivatives: true}},
	{"CC BY-NC", "Attribution-NonCommercial", model.CCVariant{Attribution: true, NonCommercial: true}},
	{"CC BY-SA", "Attribution-ShareAlike", model.CCVariant{Attribution: true, ShareAlike: true}},
	{"CC BY-ND", "Attribution-NoDerivs", model.CCVariant{Attribution: true, NoDerivatives: true}},
	{"CC BY", "Attribution", model.CCVariant{Attribution: true}},
	{"CC0", "Public Domain Dedication", model.CCVariant{}},
}

// ccLicenseSegments identify a Creative Commons license URL (as opposed to
// the CC homepage).
var ccLicenseSegments = []string{
	"creativecommons.org/licenses/",
	"creativecommons.org/publicdomain/",
}

// DetectCC scans free text for a Creative Commons license token and, if one
// is found, returns the corresponding classification. Returns false when no
// CC token is present.
func DetectCC(text string) (model.CopyrightStatus, bool) {
	lower := strings.ToLower(text)

	for _, cc := range ccCodes {
		if !strings.Contains(lower, strings.ToLower(cc.code)) {
			continue
		}
		return statusForCC(cc), true
	}

	// CC license URLs (rel="license" links, XMP WebStatement fields).
	for _, seg := range ccLicenseSegments {
		idx := strings.Index(lower, seg)
		if idx < 0 {
			continue
		}
		if cc, ok := ccFromURLPath(lower[idx+len(seg):]); ok {
			return statusForCC(cc), true
		}
	}

	return model.CopyrightStatus{}, false
}

// ccFromURLPath maps the path after the license segment ("by-nc-sa/4.0/")
// to a CC code. A publicdomain path ("zero/1.0/") maps to CC0.
func ccFromURLPath(path string) (ccCode, bool) {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?#"); i >= 0 {
		path = path[:i]
	}
	switch path {
	case "by":
		return ccCodes[5], true
	case "by-sa":
		return ccCodes[3], true
	case "by-nd":
		return ccCodes[4], true
	case "by-nc":
		return ccCodes[2], true
	case "by-nc-sa":
		return ccCodes[0], true
	case "by-nc-nd":
		return ccCodes[1], true
	case "zero", "mark":
		return ccCodes[6], true
	default:
		return ccCode{}, false
	}
}

// statusForCC expands a matched CC code into a full status record.
func statusForCC(cc ccCode) model.CopyrightStatus {
	variant := cc.variant
	isCC0 := cc.code == "CC0"

	status := model.CopyrightStatus{
		Class:                model.ClassCreativeCommons,
		LicenseName:          "Creative Commons " + cc.name,
		CC:                   &variant,
		IsPublicDomain:       isCC0,
		AttributionRequired:  model.BoolPtr(variant.Attribution),
		CommercialUseAllowed: model.BoolPtr(!variant.NonCommercial),
		ModificationsAllowed: model.BoolPtr(!variant.NoDerivatives),
		Confidence:           model.ConfidenceHigh,
	}
	if isCC0 {
		status.Class = model.ClassPublicDomain
	}

	if variant.Attribution {
		status.Restrictions = append(status.Restrictions, "Attribution required")
	}
	if variant.NonCommercial {
		status.Restrictions = append(status.Restrictions, "Non-commercial use only")
	}
	if variant.NoDerivatives {
		status.Restrictions = append(status.Restrictions, "No derivatives allowed")
	}
	if variant.ShareAlike {
		status.Restrictions = append(status.Restrictions, "Share-alike required")
	}

	return status
}
