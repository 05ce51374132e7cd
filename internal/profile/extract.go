// Package profile extracts candidate identity, education and experience signals from resume text.
package profile

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/intellihire/internal/types"
)

const (
	// nameScanLines is how many leading lines are searched for a candidate name.
	nameScanLines = 5
	// minNameLength rejects short capitalized pairs such as "Mr Li".
	minNameLength = 5
	// maxEducationEntries caps the number of degree strings kept.
	maxEducationEntries = 3

	minGraduationYear = 2000
	maxGraduationYear = 2030
	maxExperienceYear = 50
)

var (
	nameRe  = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\b`)
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
	}

	educationSectionRe = regexp.MustCompile(`(?is)(?:EDUCATION|ACADEMIC|QUALIFICATION)(.*?)(?:EXPERIENCE|SKILLS|PROJECTS|INTERNSHIP|$)`)
	degreeRe           = regexp.MustCompile(`(?i)\b(?:B\.?Tech|B\.?E\.?|M\.?Tech|M\.?E\.?|MBA|MS|PhD|Bachelor|Master|BSc|MSc|BCA|MCA|B\.Sc|M\.Sc)[^\n]{0,100}`)

	// Each pattern's last capture group holds the year; for ranges that is the end year.
	graduationYearRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Graduation|Graduated|Passing|Pass\s*out|Completed)[\s:]*(\d{4})`),
		regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4})`),
		regexp.MustCompile(`(?i)(?:Class\s*of|Batch\s*of)\s*(\d{4})`),
		regexp.MustCompile(`(?i)\b(\d{4})\s*(?:\(|\[)?\s*(?:Expected|Pursuing|Current)?\s*(?:\)|\])?`),
		regexp.MustCompile(`(?i)(?:Year|Yr)[\s:]*(\d{4})`),
	}

	experienceRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)
)

// Extract builds a CandidateProfile from resume text, classifying against the current year.
func Extract(text string) types.CandidateProfile {
	return ExtractAt(text, time.Now())
}

// ExtractAt is Extract with an explicit clock. Missing signals resolve to defaults;
// it never fails.
func ExtractAt(text string, now time.Time) types.CandidateProfile {
	p := types.CandidateProfile{
		Name:      extractName(text),
		Email:     firstMatch(text, emailRe),
		Phone:     firstMatch(text, phoneRes...),
		Education: []string{},
	}

	if section, ok := educationSection(text); ok {
		p.Education = extractDegrees(section)
		p.GraduationYear = extractGraduationYear(section)
	}
	p.ExperienceYears = extractExperienceYears(text)
	p.CandidateType, p.IsFresher = Classify(p.GraduationYear, p.ExperienceYears, now.Year())

	return p
}

func extractName(text string) string {
	lines := strings.SplitN(text, "\n", nameScanLines+1)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		m := nameRe.FindStringSubmatch(line)
		if m != nil && len(m[1]) > minNameLength {
			return strings.TrimSpace(m[1])
		}
	}
	return "Unknown"
}

func firstMatch(text string, patterns ...*regexp.Regexp) *string {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return &m
		}
	}
	return nil
}

func educationSection(text string) (string, bool) {
	m := educationSectionRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func extractDegrees(section string) []string {
	matches := degreeRe.FindAllString(section, maxEducationEntries)
	degrees := make([]string, 0, len(matches))
	for _, m := range matches {
		degrees = append(degrees, strings.TrimSpace(m))
	}
	return degrees
}

func extractGraduationYear(section string) *int {
	best := 0
	for _, re := range graduationYearRes {
		for _, m := range re.FindAllStringSubmatch(section, -1) {
			year, err := strconv.Atoi(m[len(m)-1])
			if err != nil || year < minGraduationYear || year > maxGraduationYear {
				continue
			}
			best = max(best, year)
		}
	}
	if best == 0 {
		return nil
	}
	return &best
}

// extractExperienceYears only honours explicit "N years of experience" phrases.
func extractExperienceYears(text string) int {
	best := 0
	for _, m := range experienceRe.FindAllStringSubmatch(text, -1) {
		years, err := strconv.Atoi(m[1])
		if err != nil || years > maxExperienceYear {
			continue
		}
		best = max(best, years)
	}
	return best
}
