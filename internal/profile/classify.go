package profile

import "fmt"

// recentGraduationWindow is the number of years after graduation a candidate
// still counts as a recent graduate.
const recentGraduationWindow = 2

type recency int

const (
	anyRecency recency = iota
	recent
	notRecent
)

// classification is one row of the candidate-type decision table.
type classification struct {
	hasGraduation bool
	recency       recency
	experienced   bool
	fresher       bool
	label         func(gradYear, expYears int) string
}

// classificationTable is evaluated top to bottom; the first matching row wins.
var classificationTable = []classification{
	{hasGraduation: true, recency: recent, experienced: false, fresher: true,
		label: func(int, int) string { return "Fresher" }},
	{hasGraduation: true, recency: recent, experienced: true,
		label: func(_, exp int) string { return fmt.Sprintf("Recent Graduate (%d yr exp)", exp) }},
	{hasGraduation: true, recency: notRecent, experienced: true,
		label: func(_, exp int) string { return fmt.Sprintf("Experienced (%d years)", exp) }},
	{hasGraduation: true, recency: notRecent, experienced: false,
		label: func(year, _ int) string { return fmt.Sprintf("Graduate (%d)", year) }},
	{hasGraduation: false, recency: anyRecency, experienced: true,
		label: func(_, exp int) string { return fmt.Sprintf("Experienced (%d years)", exp) }},
	{hasGraduation: false, recency: anyRecency, experienced: false,
		label: func(int, int) string { return "Unknown" }},
}

// Classify returns the candidate type label and fresher flag for the given signals.
// Only a recent graduate with no declared experience is a fresher.
func Classify(gradYear *int, expYears int, currentYear int) (string, bool) {
	year := 0
	rec := anyRecency
	if gradYear != nil {
		year = *gradYear
		rec = notRecent
		if currentYear-year <= recentGraduationWindow {
			rec = recent
		}
	}

	for _, row := range classificationTable {
		if row.hasGraduation != (gradYear != nil) || row.experienced != (expYears > 0) {
			continue
		}
		if row.recency != anyRecency && row.recency != rec {
			continue
		}
		return row.label(year, expYears), row.fresher
	}
	return "Unknown", false
}
