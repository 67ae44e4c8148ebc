package model

// Confidence expresses how certain a classification or verdict is.
// It reflects extraction/analysis certainty, never legal certainty.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// LicenseClass is the closed license classification produced by the resolver.
// The assessment engine branches on this enum only; all string pattern
// matching against license text happens upstream in internal/license.
type LicenseClass string

const (
	ClassUnknown           LicenseClass = "unknown"
	ClassPublicDomain      LicenseClass = "public_domain"
	ClassCreativeCommons   LicenseClass = "creative_commons"
	ClassOpenLicense       LicenseClass = "open_license" // open but not CC (Unsplash, Pixabay, MIT, ...)
	ClassAllRightsReserved LicenseClass = "all_rights_reserved"
)

// Open reports whether the class permits course use without a fair-use
// defense. Openly licensed content takes the fast path in the engine.
func (c LicenseClass) Open() bool {
	switch c {
	case ClassPublicDomain, ClassCreativeCommons, ClassOpenLicense:
		return true
	default:
		return false
	}
}

func (c LicenseClass) String() string {
	return string(c)
}

// CCVariant holds the composable Creative Commons restriction flags.
type CCVariant struct {
	Attribution   bool `json:"attribution"`    // BY
	NonCommercial bool `json:"non_commercial"` // NC
	NoDerivatives bool `json:"no_derivatives"` // ND
	ShareAlike    bool `json:"share_alike"`    // SA
}

// Code returns the short license code, e.g. "CC BY-NC-SA". CC0 if no flags.
func (v CCVariant) Code() string {
	if !v.Attribution && !v.NonCommercial && !v.NoDerivatives && !v.ShareAlike {
		return "CC0"
	}
	code := "CC BY"
	if v.NonCommercial {
		code += "-NC"
	}
	if v.NoDerivatives {
		code += "-ND"
	}
	if v.ShareAlike {
		code += "-SA"
	}
	return code
}

// CopyrightStatus is the normalized license/copyright record the resolver
// produces and the assessment engine consumes. Optional fields use pointers
// or zero values; missing means unknown, never "assume permissive".
type CopyrightStatus struct {
	Class       LicenseClass `json:"class"`
	LicenseName string       `json:"license_name,omitempty"` // human-readable, e.g. "Creative Commons Attribution-ShareAlike"
	CC          *CCVariant   `json:"cc,omitempty"`           // set when Class is creative_commons

	Holder string `json:"copyright_holder,omitempty"`
	Year   *int   `json:"year,omitempty"`

	// IsPublicDomain is derivable from Class but carried explicitly for the
	// engine's fast-path check. When true every restriction is vacuous.
	IsPublicDomain bool `json:"is_public_domain"`

	CommercialUseAllowed *bool `json:"commercial_use_allowed,omitempty"`
	ModificationsAllowed *bool `json:"modifications_allowed,omitempty"`
	AttributionRequired  *bool `json:"attribution_required,omitempty"`

	AttributionText string   `json:"attribution_text,omitempty"`
	Restrictions    []string `json:"restrictions,omitempty"`
	Notices         []string `json:"copyright_notices,omitempty"`

	Confidence Confidence `json:"confidence"`
}

// BoolPtr returns a pointer to b. Convenience for the tri-state fields.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
