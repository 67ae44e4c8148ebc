package license

import (
	"net/url"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// freeHost describes a known open-content host and the license its content
// carries by default.
type freeHost struct {
	domain              string
	source              string
	licenseName         string
	attributionRequired bool
}

// freeHosts are hosts whose content is free to use (some with attribution).
var freeHosts = []freeHost{
	{"commons.wikimedia.org", "Wikimedia Commons", "Various - Check specific file", true},
	{"unsplash.com", "Unsplash", "Unsplash License", false},
	{"pexels.com", "Pexels", "Pexels License", false},
	{"pixabay.com", "Pixabay", "Pixabay License", false},
	{"images.nasa.gov", "NASA Image Gallery", "Public Domain", false},
}

// mixedHost describes a host carrying both open and fully copyrighted
// content. It names the source but leaves the class unresolved, so the
// conservative default still applies downstream.
type mixedHost struct {
	domain      string
	source      string
	licenseName string
	note        string
}

var mixedHosts = []mixedHost{
	{"flickr.com", "Flickr", "Various - Check specific photo",
		"Flickr hosts both copyrighted and CC-licensed content"},
}

// stockDomains are stock-photo agencies that enforce copyright. Content
// traced to one of these is treated as all rights reserved.
var stockDomains = []string{
	"shutterstock",
	"gettyimages",
	"istockphoto",
	"adobestock",
	"depositphotos",
	"dreamstime",
	"123rf",
	"alamy",
	"bigstockphoto",
	"stocksy",
	"pond5",
	"masterfile",
	"superstock",
	"agefotostock",
	"canstockphoto",
}

// DomainHint classifies a source URL against the known free-host and
// stock-agency lists. The boolean reports whether the URL produced a hint.
func DomainHint(rawURL string) (model.CopyrightStatus, bool) {
	if rawURL == "" {
		return model.CopyrightStatus{}, false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.CopyrightStatus{}, false
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	for _, f := range freeHosts {
		if host == f.domain || strings.HasSuffix(host, "."+f.domain) {
			status := model.CopyrightStatus{
				LicenseName:          f.licenseName,
				AttributionRequired:  model.BoolPtr(f.attributionRequired),
				CommercialUseAllowed: model.BoolPtr(true),
				Confidence:           model.ConfidenceMedium,
			}
			status.Class = ClassifyName(f.licenseName)
			if status.Class == model.ClassUnknown {
				status.Class = model.ClassOpenLicense
			}
			if status.Class == model.ClassPublicDomain {
				status.IsPublicDomain = true
			}
			if f.attributionRequired {
				status.Restrictions = append(status.Restrictions, "Attribution required")
			}
			status.Notices = append(status.Notices, "Source host: "+f.source)
			return status, true
		}
	}

	for _, m := range mixedHosts {
		if host == m.domain || strings.HasSuffix(host, "."+m.domain) {
			return model.CopyrightStatus{
				LicenseName: m.licenseName,
				Confidence:  model.ConfidenceLow,
				Notices:     []string{"Source host: " + m.source, m.note},
				Restrictions: []string{
					"Check the specific item's license before use",
				},
			}, true
		}
	}

	for _, d := range stockDomains {
		if strings.Contains(host, d) {
			return model.CopyrightStatus{
				Class:                model.ClassAllRightsReserved,
				LicenseName:          "All Rights Reserved (stock agency)",
				CommercialUseAllowed: model.BoolPtr(false),
				ModificationsAllowed: model.BoolPtr(false),
				Restrictions: []string{
					"Content traced to a commercial stock agency",
					"License purchase required for use",
				},
				Confidence: model.ConfidenceMedium,
			}, true
		}
	}

	return model.CopyrightStatus{}, false
}
