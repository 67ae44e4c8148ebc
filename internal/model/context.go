package model

import (
	"fmt"
	"strings"
)

// CourseType is where the course content will be distributed.
type CourseType string

const (
	CourseOnline   CourseType = "Online"
	CourseHybrid   CourseType = "Hybrid"
	CourseInPerson CourseType = "InPerson"
)

// InstitutionType is the kind of educational institution.
type InstitutionType string

const (
	InstitutionPublicUniversity  InstitutionType = "PublicUniversity"
	InstitutionPrivateUniversity InstitutionType = "PrivateUniversity"
	InstitutionCommunityCollege  InstitutionType = "CommunityCollege"
	InstitutionK12               InstitutionType = "K12"
)

// ContentType is the normalized content kind. Raw file extensions are
// normalized to one of these two before reaching the engine.
type ContentType string

const (
	ContentImage    ContentType = "Image"
	ContentDocument ContentType = "Document"
)

// UsageContext is the caller-supplied course context for an assessment.
type UsageContext struct {
	Course      CourseType      `json:"course_type"`
	Institution InstitutionType `json:"institution_type"`
	Content     ContentType     `json:"content_type"`
}

// Validate fails fast on any enum value outside the closed sets. These three
// values index the scoring tables directly, so a bad value is a contract
// violation rather than something to default silently.
func (u UsageContext) Validate() error {
	switch u.Course {
	case CourseOnline, CourseHybrid, CourseInPerson:
	default:
		return fmt.Errorf("invalid course type %q (expected Online, Hybrid or InPerson)", u.Course)
	}
	switch u.Institution {
	case InstitutionPublicUniversity, InstitutionPrivateUniversity,
		InstitutionCommunityCollege, InstitutionK12:
	default:
		return fmt.Errorf("invalid institution type %q (expected PublicUniversity, PrivateUniversity, CommunityCollege or K12)", u.Institution)
	}
	switch u.Content {
	case ContentImage, ContentDocument:
	default:
		return fmt.Errorf("invalid content type %q (expected Image or Document)", u.Content)
	}
	return nil
}

// ParseCourseType normalizes user input ("in-person", "online", ...) to a
// CourseType, rejecting anything outside the closed set.
func ParseCourseType(s string) (CourseType, error) {
	switch normalizeEnum(s) {
	case "online":
		return CourseOnline, nil
	case "hybrid":
		return CourseHybrid, nil
	case "inperson":
		return CourseInPerson, nil
	default:
		return "", fmt.Errorf("unknown course type %q (expected Online, Hybrid or In-person)", s)
	}
}

// ParseInstitutionType normalizes user input ("Public University", "k-12",
// ...) to an InstitutionType.
func ParseInstitutionType(s string) (InstitutionType, error) {
	switch normalizeEnum(s) {
	case "publicuniversity":
		return InstitutionPublicUniversity, nil
	case "privateuniversity":
		return InstitutionPrivateUniversity, nil
	case "communitycollege":
		return InstitutionCommunityCollege, nil
	case "k12":
		return InstitutionK12, nil
	default:
		return "", fmt.Errorf("unknown institution type %q (expected Public University, Private University, Community College or K-12)", s)
	}
}

// normalizeEnum lowercases and strips separators so "In-person", "in person"
// and "InPerson" all compare equal.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{" ", "-", "_"} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return s
}
