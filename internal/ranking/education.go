package ranking

import "regexp"

const (
	postgraduateEducationScore = 90.0
	educationScore             = 70.0
	noEducationScore           = 40.0
)

// postgraduateRe matches whole-word postgraduate markers so that "systems"
// does not read as "ms".
var postgraduateRe = regexp.MustCompile(`(?i)\b(?:masters?|phd|ph\.d|mba|m\.?tech|ms|msc|m\.sc)\b`)

// EducationScore rates the extracted degree strings.
func EducationScore(education []string) float64 {
	if len(education) == 0 {
		return noEducationScore
	}
	for _, entry := range education {
		if postgraduateRe.MatchString(entry) {
			return postgraduateEducationScore
		}
	}
	return educationScore
}
