package license

import (
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// openIndicators classify a license name as open by case-insensitive
// substring match. All license-text pattern matching lives here, on the
// resolver side of the boundary; the engine only ever sees the closed enum.
var openIndicators = []string{
	"creative commons",
	"cc by",
	"cc0",
	"public domain",
	"open",
}

// ClassifyName maps a free-text license name onto the closed LicenseClass
// enum. Unknown or empty names classify as ClassUnknown.
func ClassifyName(name string) model.LicenseClass {
	if name == "" {
		return model.ClassUnknown
	}
	lower := strings.ToLower(name)

	if strings.Contains(lower, "public domain") || strings.Contains(lower, "cc0") {
		return model.ClassPublicDomain
	}
	if strings.Contains(lower, "creative commons") || strings.Contains(lower, "cc by") {
		return model.ClassCreativeCommons
	}
	for _, indicator := range openIndicators {
		if strings.Contains(lower, indicator) {
			return model.ClassOpenLicense
		}
	}
	if strings.Contains(lower, "all rights reserved") {
		return model.ClassAllRightsReserved
	}
	return model.ClassUnknown
}
