package fetch

import (
	"net/url"
	"strings"
)

// Platform identifies a known job board so extraction can use selectors
// tuned to its markup instead of the generic fallbacks.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is any unrecognized host
	PlatformUnknown Platform = "unknown"
)

// platformHosts maps host substrings to platforms
var platformHosts = []struct {
	fragment string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"workday.com", PlatformWorkday},
	{"myworkdayjobs.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a posting URL
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, entry := range platformHosts {
		if strings.Contains(host, entry.fragment) {
			return entry.platform
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns description selectors for a platform,
// most specific first. Unknown platforms get the generic posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// commonNoiseSelectors are stripped from every platform's postings:
// application forms, EEO boilerplate, share widgets, and consent banners
// all pollute the corpus the spans are anchored against.
var commonNoiseSelectors = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",

	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",

	".social-share",
	".share-buttons",
	".social-links",

	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// PlatformNoiseSelectors returns the exclusion selectors for a platform
func PlatformNoiseSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return append(commonNoiseSelectors,
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		)
	case PlatformLever:
		return append(commonNoiseSelectors,
			".apply-section",
			".lever-application-form",
			".posting-apply",
		)
	case PlatformWorkday:
		return append(commonNoiseSelectors,
			"[data-automation-id='applyButton']",
			".application-section",
		)
	default:
		return commonNoiseSelectors
	}
}
