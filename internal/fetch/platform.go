package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known applicant tracking systems.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// genericSelectors locate a posting body on unknown boards.
var genericSelectors = []string{
	".job-description",
	"#job-description",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

// ContentSelectors returns description selectors for a platform, most specific first.
func ContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return append([]string{".job__description", ".job-description__content", "#content"}, genericSelectors...)
	case PlatformLever:
		return append([]string{".posting-page .section-wrapper", ".posting-description"}, genericSelectors...)
	case PlatformWorkday:
		return append([]string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"}, genericSelectors...)
	default:
		return genericSelectors
	}
}

// NoiseSelectors returns elements stripped before extraction.
func NoiseSelectors(platform Platform) []string {
	common := []string{
		"nav", "footer", "header", "script", "style", "noscript",
		"form", ".application-form", "#application-form", ".apply-button-container",
		".eeo-statement", ".voluntary-disclosure", ".cookie-banner", ".social-share",
	}
	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
