package license

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// publicDomainCutoff: works published before this year are out of US
// copyright.
const publicDomainCutoff = 1928

var (
	// Copyright notice forms: "© 2003 Holder", "Copyright 2003 Holder",
	// "(c) 2003 Holder".
	noticePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)©\s*((?:19|20)\d{2})\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)Copyright\s*©?\s*((?:19|20)\d{2})\s*([^.\n]+)`),
		regexp.MustCompile(`(?i)\(c\)\s*((?:19|20)\d{2})\s*([^.\n]+)`),
	}

	allRightsReservedRe = regexp.MustCompile(`(?i)all rights reserved`)

	// Any plausible publication year, for the pre-1928 heuristic.
	anyYearRe = regexp.MustCompile(`\b(18|19)\d{2}\b`)
)

// publicDomainIndicators are explicit dedication statements.
var publicDomainIndicators = []string{
	"public domain",
	"no rights reserved",
	"cc0",
	"creative commons zero",
}

// noticeScan holds what the copyright-notice pass found in a text sample.
type noticeScan struct {
	Year              int    // 0 when unknown
	Holder            string // "" when unknown
	Notices           []string
	AllRightsReserved bool
}

// scanNotices extracts copyright notices, the first holder/year pair, and an
// "all rights reserved" marker from free text.
func scanNotices(text string) noticeScan {
	var scan noticeScan
	seen := make(map[string]bool)

	for _, re := range noticePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			year, _ := strconv.Atoi(m[1])
			holder := strings.TrimSpace(m[2])
			if len(holder) > 100 {
				holder = holder[:100]
			}

			if scan.Year == 0 {
				scan.Year = year
			}
			if scan.Holder == "" {
				scan.Holder = holder
			}

			notice := fmt.Sprintf("© %d %s", year, holder)
			if !seen[notice] {
				seen[notice] = true
				scan.Notices = append(scan.Notices, notice)
			}
		}
	}

	scan.AllRightsReserved = allRightsReservedRe.MatchString(text)

	return scan
}

// isPublicDomain applies the public-domain heuristic: an explicit dedication
// statement, or a detected publication year before the US copyright cutoff.
func isPublicDomain(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range publicDomainIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	if m := anyYearRe.FindString(text); m != "" {
		if year, err := strconv.Atoi(m); err == nil && year < publicDomainCutoff {
			return true
		}
	}

	return false
}
