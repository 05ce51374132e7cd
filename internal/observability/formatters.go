// Package observability provides formatted output utilities for the screening CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/intellihire/internal/pipeline"
	"github.com/jonathan/intellihire/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(clip(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s to the box interior by rune count.
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= boxWidth-4 {
		return s
	}
	return s + strings.Repeat(" ", boxWidth-4-n)
}

// clip shortens s to limit runes, ending in "...".
func clip(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// listLines writes up to limit items as bullets with an overflow line.
func listLines(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintJob outputs the job the batch is screened against.
func (p *Printer) PrintJob(job types.Job) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", job.Title)
	if job.ExperienceRequired != "" {
		fmt.Fprintf(&sb, "Experience: %s\n", job.ExperienceRequired)
	}
	sb.WriteString("\nRequired Skills:\n")
	listLines(&sb, job.RequiredSkills, 10)

	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs the full analysis for one candidate.
func (p *Printer) PrintResult(filename string, r *types.AnalysisResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:     %s\n", filename)
	fmt.Fprintf(&sb, "Name:     %s\n", r.CandidateName)
	if r.Email != nil {
		fmt.Fprintf(&sb, "Email:    %s\n", *r.Email)
	}
	fmt.Fprintf(&sb, "Type:     %s\n", r.CandidateType)
	fmt.Fprintf(&sb, "Score:    %.1f (%s)\n", r.OverallScore, r.Recommendation.Label())
	fmt.Fprintf(&sb, "Skills %.1f | Exp %.1f | Edu %.1f | Fit %.1f\n",
		r.SkillMatchPercentage, r.ExperienceMatchScore, r.QualificationScore, r.CulturalFitScore)
	if r.AugmenterUsed {
		sb.WriteString("Mode:     augmented\n")
	} else {
		sb.WriteString("Mode:     algorithmic\n")
	}

	if len(r.MatchDetails) > 0 {
		sb.WriteString("\nSkill Matches:\n")
		count := min(len(r.MatchDetails), maxItemsToShow*2)
		for i := 0; i < count; i++ {
			m := r.MatchDetails[i]
			mark := "✗"
			if m.Method != types.MethodNoMatch {
				mark = "✓"
			}
			fmt.Fprintf(&sb, "  %s %s → %s (%.0f%%, %s)\n", mark, m.Required, m.Found, m.Similarity, m.Method)
		}
		if len(r.MatchDetails) > count {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(r.MatchDetails)-count)
		}
	}

	if len(r.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		listLines(&sb, r.Strengths, maxItemsToShow)
	}
	if len(r.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		listLines(&sb, r.Weaknesses, maxItemsToShow)
	}
	if len(r.SuggestedQuestions) > 0 {
		sb.WriteString("\nInterview Questions:\n")
		listLines(&sb, r.SuggestedQuestions, maxItemsToShow)
	}
	if r.Reasoning != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.Reasoning)
	}

	p.printBox("CANDIDATE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked batch with skipped files at the end.
func (p *Printer) PrintRanking(items []pipeline.BatchItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	var analyzed, skipped int
	for _, item := range items {
		if item.Skipped || item.Result == nil {
			skipped++
			continue
		}
		analyzed++
		fmt.Fprintf(&sb, "#%d  %s\n", analyzed, item.Result.CandidateName)
		fmt.Fprintf(&sb, "    %.1f  %s  [%s]\n", item.Result.OverallScore, item.Result.Recommendation.Label(), item.Filename)
	}
	if skipped > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, item := range items {
			if item.Skipped || item.Result == nil {
				fmt.Fprintf(&sb, "  ⚠ %s: %s\n", item.Filename, item.SkipReason)
			}
		}
	}
	fmt.Fprintf(&sb, "\n%d analyzed, %d skipped", analyzed, skipped)

	p.printBox("RANKED CANDIDATES", sb.String())
}

// Progress prints one line per batch event. It satisfies pipeline.ProgressCallback.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) Progress(event pipeline.ProgressEvent) {
	switch event.Step {
	case pipeline.StepSkipped:
		fmt.Fprintf(p.out, "[%d/%d] skipped %s: %s\n", event.Index+1, event.Total, event.Filename, event.Message)
	case pipeline.StepCached:
		fmt.Fprintf(p.out, "[%d/%d] cached  %s\n", event.Index+1, event.Total, event.Filename)
	default:
		fmt.Fprintf(p.out, "[%d/%d] %s  %s\n", event.Index+1, event.Total, event.Filename, event.Message)
	}
}
