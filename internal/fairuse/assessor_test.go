package fairuse

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/clearuse/clearuse/internal/model"
)

func arrStatus() model.CopyrightStatus {
	return model.CopyrightStatus{
		Class:                model.ClassAllRightsReserved,
		LicenseName:          "All Rights Reserved",
		CommercialUseAllowed: model.BoolPtr(false),
		ModificationsAllowed: model.BoolPtr(false),
		Confidence:           model.ConfidenceLow,
	}
}

func usage(course model.CourseType, inst model.InstitutionType, content model.ContentType) model.UsageContext {
	return model.UsageContext{Course: course, Institution: inst, Content: content}
}

func TestAssess_PublicDomainFastPath(t *testing.T) {
	a := NewAssessor()
	status := model.CopyrightStatus{
		Class:          model.ClassPublicDomain,
		LicenseName:    "Public Domain",
		IsPublicDomain: true,
		Confidence:     model.ConfidenceHigh,
	}

	// Public domain overrides everything, regardless of context.
	for _, course := range []model.CourseType{model.CourseOnline, model.CourseHybrid, model.CourseInPerson} {
		for _, inst := range []model.InstitutionType{
			model.InstitutionPublicUniversity, model.InstitutionPrivateUniversity,
			model.InstitutionCommunityCollege, model.InstitutionK12,
		} {
			for _, content := range []model.ContentType{model.ContentImage, model.ContentDocument} {
				verdict, err := a.Assess(status, usage(course, inst, content))
				if err != nil {
					t.Fatalf("Assess returned error: %v", err)
				}
				if !verdict.CanUse || verdict.Confidence != model.ConfidenceHigh {
					t.Errorf("%s/%s/%s: want CanUse=true High, got %v %s",
						course, inst, content, verdict.CanUse, verdict.Confidence)
				}
				if !verdict.OpenContent {
					t.Errorf("%s/%s/%s: expected fast path", course, inst, content)
				}
				if len(verdict.Factors) != 0 {
					t.Errorf("fast path must not run four-factor analysis, got %d factors", len(verdict.Factors))
				}
				if len(verdict.Warnings) != 0 {
					t.Errorf("fast path must leave warnings empty, got %v", verdict.Warnings)
				}
			}
		}
	}
}

func TestAssess_OpenLicenseFastPath(t *testing.T) {
	a := NewAssessor()

	status := model.CopyrightStatus{
		Class:               model.ClassCreativeCommons,
		LicenseName:         "Creative Commons Attribution-NonCommercial",
		CC:                  &model.CCVariant{Attribution: true, NonCommercial: true},
		AttributionRequired: model.BoolPtr(true),
		AttributionText:     `"Sunset" by J. Doe is licensed under CC BY-NC`,
		Restrictions:        []string{"Attribution required", "Non-commercial use only"},
		Confidence:          model.ConfidenceHigh,
	}

	verdict, err := a.Assess(status, usage(model.CourseOnline, model.InstitutionPrivateUniversity, model.ContentImage))
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	if !verdict.CanUse || verdict.Confidence != model.ConfidenceHigh || !verdict.OpenContent {
		t.Fatalf("expected open-license fast path, got %+v", verdict)
	}
	if len(verdict.Factors) != 0 {
		t.Errorf("fast path must leave factors unset")
	}
	rec := verdict.Recommendation
	for _, want := range []string{
		"Creative Commons Attribution-NonCommercial",
		"Attribution Required",
		"Non-Commercial Only",
		"Attribution required",
	} {
		if !strings.Contains(rec, want) {
			t.Errorf("recommendation missing %q:\n%s", want, rec)
		}
	}
}

func TestAssess_ScenarioPublicInPersonDocument(t *testing.T) {
	// Public university, in-person course, document, all rights reserved:
	// purpose 1.0, nature 0.7, amount 1.0, market 1.0 -> aggregate 0.925.
	a := NewAssessor()
	verdict, err := a.Assess(arrStatus(),
		usage(model.CourseInPerson, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	wantFactors := map[string]float64{
		model.FactorPurpose:      1.0,
		model.FactorNature:       0.7,
		model.FactorAmount:       1.0,
		model.FactorMarketEffect: 1.0,
	}
	for name, want := range wantFactors {
		got := verdict.Factors[name].Score
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("factor %s: want %.2f, got %.2f", name, want, got)
		}
	}
	if math.Abs(verdict.AggregateScore-0.925) > 1e-9 {
		t.Errorf("aggregate: want 0.925, got %v", verdict.AggregateScore)
	}
	if !verdict.CanUse || verdict.Confidence != model.ConfidenceHigh {
		t.Errorf("want CanUse=true High, got %v %s", verdict.CanUse, verdict.Confidence)
	}
}

func TestAssess_ScenarioPrivateOnlineImage(t *testing.T) {
	// Private university, online course, image: purpose 0.7, nature 0.6,
	// amount 0.8, market 0.9 -> aggregate 0.75.
	a := NewAssessor()
	verdict, err := a.Assess(arrStatus(),
		usage(model.CourseOnline, model.InstitutionPrivateUniversity, model.ContentImage))
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	wantFactors := map[string]float64{
		model.FactorPurpose:      0.7,
		model.FactorNature:       0.6,
		model.FactorAmount:       0.8,
		model.FactorMarketEffect: 0.9,
	}
	for name, want := range wantFactors {
		got := verdict.Factors[name].Score
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("factor %s: want %.2f, got %.2f", name, want, got)
		}
	}
	if math.Abs(verdict.AggregateScore-0.75) > 1e-9 {
		t.Errorf("aggregate: want 0.75, got %v", verdict.AggregateScore)
	}
	if !verdict.CanUse || verdict.Confidence != model.ConfidenceHigh {
		t.Errorf("want CanUse=true High, got %v %s", verdict.CanUse, verdict.Confidence)
	}
	if !strings.Contains(verdict.Recommendation, "Note for Online Courses") {
		t.Errorf("online course note missing from recommendation")
	}
}

func TestAssess_LicenseTextDoesNotAlterFactors(t *testing.T) {
	// The license wording itself never changes the four-factor scores; only
	// the fast-path classification does.
	a := NewAssessor()
	ctx := usage(model.CourseOnline, model.InstitutionPrivateUniversity, model.ContentImage)

	base, err := a.Assess(arrStatus(), ctx)
	if err != nil {
		t.Fatal(err)
	}

	other := arrStatus()
	other.LicenseName = "Unknown - Assume All Rights Reserved"
	other.Class = model.ClassUnknown
	other.Holder = "Example Corp"
	other.Year = model.IntPtr(2019)
	got, err := a.Assess(other, ctx)
	if err != nil {
		t.Fatal(err)
	}

	if base.AggregateScore != got.AggregateScore {
		t.Errorf("aggregate differs: %v vs %v", base.AggregateScore, got.AggregateScore)
	}
	for name := range base.Factors {
		if base.Factors[name].Score != got.Factors[name].Score {
			t.Errorf("factor %s differs", name)
		}
	}
}

func TestBandVerdict_Boundaries(t *testing.T) {
	tests := []struct {
		aggregate  float64
		canUse     bool
		confidence model.Confidence
		warnings   int
	}{
		{0.70, true, model.ConfidenceHigh, 0},
		{0.6999, true, model.ConfidenceMedium, 1},
		{0.50, true, model.ConfidenceMedium, 1},
		{0.4999, false, model.ConfidenceMedium, 1},
		{0.30, false, model.ConfidenceMedium, 1},
		{0.2999, false, model.ConfidenceHigh, 0},
		{0.0, false, model.ConfidenceHigh, 0},
		{1.0, true, model.ConfidenceHigh, 0},
	}

	for _, tt := range tests {
		canUse, confidence, warnings := bandVerdict(tt.aggregate)
		if canUse != tt.canUse || confidence != tt.confidence || len(warnings) != tt.warnings {
			t.Errorf("bandVerdict(%v) = %v/%s/%d warnings, want %v/%s/%d",
				tt.aggregate, canUse, confidence, len(warnings),
				tt.canUse, tt.confidence, tt.warnings)
		}
	}
}

func TestAssess_Idempotent(t *testing.T) {
	a := NewAssessor()
	// In-person at a public university with an image yields factor scores
	// (1.0, 0.6, 0.8, 1.0), whose weighted sum changes in the low bits when
	// added in a different order. Repeated calls must agree bit for bit.
	ctx := usage(model.CourseInPerson, model.InstitutionPublicUniversity, model.ContentImage)

	first, err := a.Assess(arrStatus(), ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		v, err := a.Assess(arrStatus(), ctx)
		if err != nil {
			t.Fatal(err)
		}
		if v.AggregateScore != first.AggregateScore {
			t.Fatalf("aggregate drifted on call %d: %v vs %v", i, v.AggregateScore, first.AggregateScore)
		}
		if !reflect.DeepEqual(first, v) {
			t.Fatalf("identical inputs produced different verdicts:\n%+v\n%+v", first, v)
		}
	}

	if math.Abs(first.AggregateScore-0.85) > 1e-9 {
		t.Errorf("aggregate = %v, want 0.85", first.AggregateScore)
	}
}

func TestAssess_InvalidContext(t *testing.T) {
	a := NewAssessor()

	cases := []model.UsageContext{
		{Course: "Correspondence", Institution: model.InstitutionK12, Content: model.ContentImage},
		{Course: model.CourseOnline, Institution: "TradeSchool", Content: model.ContentImage},
		{Course: model.CourseOnline, Institution: model.InstitutionK12, Content: "Video"},
		{},
	}
	for _, ctx := range cases {
		if _, err := a.Assess(arrStatus(), ctx); err == nil {
			t.Errorf("expected error for context %+v", ctx)
		}
	}
}

func TestBestPractices_OrderAndExtras(t *testing.T) {
	a := NewAssessor()

	baseline := []string{
		"Provide clear attribution to the original creator/source",
		"Use only the amount necessary for your educational purpose",
		"Include a copyright disclaimer in your course materials",
		"Limit access to enrolled students only (use LMS password protection)",
		"Keep records of your fair use reasoning",
		"Review usage annually and update as needed",
	}

	// In-person course: exactly the six baseline items.
	verdict, err := a.Assess(arrStatus(),
		usage(model.CourseInPerson, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(verdict.BestPractices, baseline) {
		t.Errorf("in-person best practices:\ngot  %v\nwant %v", verdict.BestPractices, baseline)
	}

	// Online course: three more, appended in fixed order.
	verdict, err = a.Assess(arrStatus(),
		usage(model.CourseOnline, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	if len(verdict.BestPractices) != 9 {
		t.Fatalf("online best practices: want 9 items, got %d", len(verdict.BestPractices))
	}
	wantTail := []string{
		"Use DRM or access controls to prevent downloading",
		"Include copyright notice on each page/screen",
		"Consider time-limited access (remove at end of term)",
	}
	if !reflect.DeepEqual(verdict.BestPractices[6:], wantTail) {
		t.Errorf("online extras: got %v", verdict.BestPractices[6:])
	}

	// Attribution required: one item prepended ahead of all others.
	status := arrStatus()
	status.AttributionRequired = model.BoolPtr(true)
	verdict, err = a.Assess(status,
		usage(model.CourseInPerson, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	if len(verdict.BestPractices) != 7 {
		t.Fatalf("want 7 items, got %d", len(verdict.BestPractices))
	}
	if verdict.BestPractices[0] != "REQUIRED: Provide attribution as specified by the license" {
		t.Errorf("attribution item not prepended: %v", verdict.BestPractices[0])
	}
}

func TestAssess_CautionBelowPointSix(t *testing.T) {
	// No reachable context scores below 0.6 with the current credits, so
	// exercise the text assembly directly.
	rec := recommendation(true, 0.55, model.CourseHybrid)
	if !strings.Contains(rec, "**Caution:**") {
		t.Errorf("expected caution line for score < 0.6:\n%s", rec)
	}
	rec = recommendation(true, 0.75, model.CourseHybrid)
	if strings.Contains(rec, "**Caution:**") {
		t.Errorf("unexpected caution line for score >= 0.6:\n%s", rec)
	}
}

func TestAggregate_MonotoneInEachFactor(t *testing.T) {
	// Weights are positive and equal, so improving any single factor while
	// holding the rest fixed never lowers the aggregate. Compare contexts
	// that differ in exactly one factor input.
	a := NewAssessor()

	online, err := a.Assess(arrStatus(),
		usage(model.CourseOnline, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	inPerson, err := a.Assess(arrStatus(),
		usage(model.CourseInPerson, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	if inPerson.AggregateScore < online.AggregateScore {
		t.Errorf("in-person (%v) should score at least online (%v)",
			inPerson.AggregateScore, online.AggregateScore)
	}

	private, err := a.Assess(arrStatus(),
		usage(model.CourseOnline, model.InstitutionPrivateUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	public, err := a.Assess(arrStatus(),
		usage(model.CourseOnline, model.InstitutionPublicUniversity, model.ContentDocument))
	if err != nil {
		t.Fatal(err)
	}
	if public.AggregateScore < private.AggregateScore {
		t.Errorf("public (%v) should score at least private (%v)",
			public.AggregateScore, private.AggregateScore)
	}
}
