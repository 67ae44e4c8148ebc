package fairuse

import (
	"fmt"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// Factor weights: flat 0.25 each, no factor dominates. The verdict bands
// below depend on this exact value.
const factorWeight = 0.25

// Verdict bands, evaluated in order. The boundary values separate "usable"
// from "not usable" for ambiguous content and must not drift.
const (
	bandHighFavor = 0.7
	bandLikely    = 0.5
	bandUncertain = 0.3
)

// factorOrder fixes the aggregation order of the four factors.
var factorOrder = []string{
	model.FactorPurpose,
	model.FactorNature,
	model.FactorAmount,
	model.FactorMarketEffect,
}

// Assessor evaluates educational fair use under the four statutory factors:
// purpose and character of use, nature of the work, amount used, and effect
// on the market. It is pure and stateless: every call is independent and
// the same inputs always produce the same verdict.
type Assessor struct{}

// NewAssessor creates a new assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess produces an advisory fair-use verdict for content with the given
// copyright status used in the given course context. Missing optional status
// fields degrade conservatively; only an invalid enum in the usage context
// is an error.
func (a *Assessor) Assess(status model.CopyrightStatus, usage model.UsageContext) (model.FairUseVerdict, error) {
	if err := usage.Validate(); err != nil {
		return model.FairUseVerdict{}, fmt.Errorf("assess: %w", err)
	}

	// Open-content fast path: public-domain or openly licensed content
	// needs no fair-use defense. The four-factor analysis never runs.
	if status.IsPublicDomain {
		return model.FairUseVerdict{
			CanUse:      true,
			Confidence:  model.ConfidenceHigh,
			OpenContent: true,
			Recommendation: "**Public Domain**\n\n" +
				"This content is in the public domain and can be freely used without restrictions.",
		}, nil
	}
	if status.Class.Open() {
		return model.FairUseVerdict{
			CanUse:         true,
			Confidence:     model.ConfidenceHigh,
			OpenContent:    true,
			Recommendation: openLicenseRecommendation(status),
		}, nil
	}

	// Four-factor analysis.
	factors := map[string]model.FactorScore{
		model.FactorPurpose:      assessPurpose(usage.Course, usage.Institution),
		model.FactorNature:       assessNature(usage.Content),
		model.FactorAmount:       assessAmount(usage.Content),
		model.FactorMarketEffect: assessMarketEffect(usage.Course),
	}

	// Sum in a fixed factor order. Map iteration order varies between runs
	// and float addition is not associative, so ranging over the map would
	// make the low bits of the aggregate differ for identical inputs.
	aggregate := 0.0
	for _, name := range factorOrder {
		aggregate += factors[name].Score * factorWeight
	}

	verdict := model.FairUseVerdict{
		Factors:        factors,
		AggregateScore: aggregate,
	}

	verdict.CanUse, verdict.Confidence, verdict.Warnings = bandVerdict(aggregate)

	verdict.Recommendation = recommendation(verdict.CanUse, aggregate, usage.Course)
	verdict.BestPractices = bestPractices(status, usage.Course)

	return verdict, nil
}

// bandVerdict maps an aggregate score onto the verdict bands, evaluated in
// order: >=0.7 usable/High, >=0.5 usable/Medium with a caution, >=0.3 not
// usable/Medium with a stronger caution, below that not usable/High.
func bandVerdict(aggregate float64) (canUse bool, confidence model.Confidence, warnings []string) {
	switch {
	case aggregate >= bandHighFavor:
		return true, model.ConfidenceHigh, nil
	case aggregate >= bandLikely:
		return true, model.ConfidenceMedium, []string{
			"Fair use is likely but not certain. Consider seeking legal advice.",
		}
	case aggregate >= bandUncertain:
		return false, model.ConfidenceMedium, []string{
			"Fair use is uncertain. Strongly recommend seeking permission or alternatives.",
		}
	default:
		return false, model.ConfidenceHigh, nil
	}
}

// assessPurpose scores Factor 1: purpose and character of use.
// Educational use generally favors fair use.
func assessPurpose(course model.CourseType, institution model.InstitutionType) model.FactorScore {
	score := 0.0
	var notes []string

	switch institution {
	case model.InstitutionPublicUniversity, model.InstitutionCommunityCollege, model.InstitutionK12:
		score += 0.5
		notes = append(notes, "Nonprofit educational institution")
	default:
		score += 0.3
		notes = append(notes, "Private institution (still educational)")
	}

	score += 0.3
	notes = append(notes, "Teaching is transformative (adds educational value)")

	if course == model.CourseInPerson || course == model.CourseHybrid {
		score += 0.2
		notes = append(notes, "Limited to enrolled students")
	} else {
		score += 0.1
		notes = append(notes, "Online distribution (wider access)")
	}

	return model.FactorScore{
		Score: clamp(score),
		Label: purposeLabel(clamp(score)),
		Notes: notes,
	}
}

// assessNature scores Factor 2: nature of the copyrighted work.
// Factual published works favor fair use more than creative ones.
func assessNature(content model.ContentType) model.FactorScore {
	score := 0.4
	notes := []string{"Assuming published work"}

	if content == model.ContentDocument {
		score += 0.3
		notes = append(notes, "Textual content (varies by nature)")
	} else {
		score += 0.2
		notes = append(notes, "Visual content (often creative)")
	}

	return model.FactorScore{
		Score: clamp(score),
		Label: natureLabel(clamp(score)),
		Notes: notes,
	}
}

// assessAmount scores Factor 3: amount and substantiality of use.
func assessAmount(content model.ContentType) model.FactorScore {
	score := 0.0
	var notes []string

	if content == model.ContentImage {
		score += 0.5
		notes = append(notes, "Using complete image (may be necessary for educational purpose)")
	} else {
		score += 0.7
		notes = append(notes, "Assuming use of excerpts rather than entire work")
	}

	score += 0.3
	notes = append(notes, "Educational use typically doesn't exploit the commercial core")

	return model.FactorScore{
		Score: clamp(score),
		Label: amountLabel(clamp(score)),
		Notes: notes,
	}
}

// assessMarketEffect scores Factor 4: effect on market value.
func assessMarketEffect(course model.CourseType) model.FactorScore {
	score := 0.5
	notes := []string{"Educational use doesn't typically replace purchase"}

	if course == model.CourseInPerson || course == model.CourseHybrid {
		score += 0.3
		notes = append(notes, "Limited to course participants")
	} else {
		score += 0.2
		notes = append(notes, "Online course (wider potential distribution)")
	}

	score += 0.2
	notes = append(notes, "No commercial benefit to institution")

	return model.FactorScore{
		Score: clamp(score),
		Label: marketLabel(clamp(score)),
		Notes: notes,
	}
}

func clamp(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	return score
}

func purposeLabel(score float64) string {
	switch {
	case score >= bandHighFavor:
		return "Strongly favors fair use (nonprofit educational purpose)"
	case score >= bandLikely:
		return "Moderately favors fair use (educational purpose)"
	default:
		return "Does not favor fair use"
	}
}

func natureLabel(score float64) string {
	switch {
	case score >= bandHighFavor:
		return "Favors fair use (factual/informational work)"
	case score >= bandLikely:
		return "Neutral (published work)"
	default:
		return "Does not favor fair use (highly creative work)"
	}
}

func amountLabel(score float64) string {
	switch {
	case score >= bandHighFavor:
		return "Favors fair use (limited portion used)"
	case score >= bandLikely:
		return "Neutral (reasonable amount for educational purpose)"
	default:
		return "Does not favor fair use (substantial portion used)"
	}
}

func marketLabel(score float64) string {
	switch {
	case score >= bandHighFavor:
		return "Favors fair use (no market harm)"
	case score >= bandLikely:
		return "Neutral (minimal market impact)"
	default:
		return "Does not favor fair use (potential market harm)"
	}
}

// recommendation assembles the explanatory text for a four-factor verdict.
func recommendation(canUse bool, score float64, course model.CourseType) string {
	var b strings.Builder

	if canUse {
		fmt.Fprintf(&b, "**Fair Use Likely Applies** (Score: %.2f)\n\n", score)
		b.WriteString("Based on the four-factor analysis, this use likely qualifies as fair use " +
			"for educational purposes. However, fair use is determined on a case-by-case basis.\n\n" +
			"**Recommendations:**\n" +
			"- Use only what is necessary for educational purpose\n" +
			"- Provide proper attribution to the original creator\n" +
			"- Limit access to enrolled students only\n" +
			"- Include copyright notice and disclaimer\n" +
			"- Do not make publicly accessible\n")
		if score < 0.6 {
			b.WriteString("\n**Caution:** Fair use is not certain in this case. " +
				"Consider seeking permission or using licensed alternatives.\n")
		}
	} else {
		fmt.Fprintf(&b, "**Fair Use Unlikely** (Score: %.2f)\n\n", score)
		b.WriteString("Based on the four-factor analysis, this use may not qualify as fair use.\n\n" +
			"**Recommendations:**\n" +
			"- Seek permission from the copyright holder\n" +
			"- Use licensed alternatives (see suggestions)\n" +
			"- Use only brief excerpts with permission\n" +
			"- Consider public domain or Creative Commons alternatives\n")
	}

	if course == model.CourseOnline {
		b.WriteString("\n**Note for Online Courses:**\n" +
			"Online distribution may face stricter fair use scrutiny. " +
			"Use password-protected learning management systems and " +
			"limit access to enrolled students only.")
	}

	return b.String()
}

// openLicenseRecommendation explains the terms of an openly licensed work.
// Unknown tri-state flags are treated as restricted, not permissive.
func openLicenseRecommendation(status model.CopyrightStatus) string {
	var b strings.Builder

	name := status.LicenseName
	if name == "" {
		name = "Open License"
	}
	fmt.Fprintf(&b, "**%s**\n\nThis content is openly licensed and can be used in your course.\n\n", name)

	if status.AttributionRequired != nil && *status.AttributionRequired {
		b.WriteString("**Attribution Required:**\n" +
			"You must provide proper attribution to the original creator.\n")
		if status.AttributionText != "" {
			fmt.Fprintf(&b, "\n```\n%s\n```\n\n", status.AttributionText)
		}
	}

	if status.CommercialUseAllowed == nil || !*status.CommercialUseAllowed {
		b.WriteString("**Non-Commercial Only:**\n" +
			"This license restricts use to non-commercial purposes only. " +
			"Educational use typically qualifies.\n\n")
	}

	if status.ModificationsAllowed == nil || !*status.ModificationsAllowed {
		b.WriteString("**No Derivatives:**\n" +
			"This license does not allow modifications. Use the content as-is.\n\n")
	}

	if len(status.Restrictions) > 0 {
		b.WriteString("**Restrictions:**\n")
		for _, r := range status.Restrictions {
			b.WriteString("- " + r + "\n")
		}
	}

	return b.String()
}

// bestPractices returns the actionable checklist for using the content.
// Order is fixed: the baseline six, three extra for online courses, and a
// required-attribution item prepended ahead of everything else.
func bestPractices(status model.CopyrightStatus, course model.CourseType) []string {
	practices := []string{
		"Provide clear attribution to the original creator/source",
		"Use only the amount necessary for your educational purpose",
		"Include a copyright disclaimer in your course materials",
		"Limit access to enrolled students only (use LMS password protection)",
		"Keep records of your fair use reasoning",
		"Review usage annually and update as needed",
	}

	if course == model.CourseOnline {
		practices = append(practices,
			"Use DRM or access controls to prevent downloading",
			"Include copyright notice on each page/screen",
			"Consider time-limited access (remove at end of term)",
		)
	}

	if status.AttributionRequired != nil && *status.AttributionRequired {
		practices = append([]string{"REQUIRED: Provide attribution as specified by the license"}, practices...)
	}

	return practices
}
