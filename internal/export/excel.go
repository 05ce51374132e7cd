// Package export renders screening results as XLSX reports.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/intellihire/internal/types"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
	skillsSheet     = "Skill Matches"
)

var candidateHeaders = []string{
	"Rank", "Candidate", "File", "Type", "Overall", "Skill Match %", "Experience",
	"Qualification", "Cultural Fit", "Recommendation", "Matched Skills", "Missing Skills",
	"Email", "Phone", "Summary",
}

// Report is the data behind one workbook.
type Report struct {
	Job         types.Job
	Candidates  []types.Candidate
	GeneratedAt time.Time
}

// Write renders the report as XLSX to w. Candidates are written in the given order.
func Write(w io.Writer, report Report) error {
	f, err := build(report)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, adding the .xlsx extension if missing.
func WriteFile(path string, report Report) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := build(report)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// Filename suggests a download name for a job's report.
func Filename(job types.Job) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(job.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-"):
			sb.WriteRune('-')
		}
	}
	name := strings.Trim(sb.String(), "-")
	if name == "" {
		name = "job"
	}
	return name + "-candidates.xlsx"
}

func build(report Report) (*excelize.File, error) {
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{candidatesSheet, skillsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	steps := []struct {
		name string
		fn   func(*excelize.File, Report) error
	}{
		{summarySheet, writeSummary},
		{candidatesSheet, writeCandidates},
		{skillsSheet, writeSkillMatches},
	}
	for _, step := range steps {
		if err := step.fn(f, report); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create %s sheet: %w", step.name, err)
		}
	}
	return f, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
}

func writeSummary(f *excelize.File, report Report) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return err
	}

	counts := map[types.Recommendation]int{}
	var total float64
	for _, c := range report.Candidates {
		counts[c.Recommendation]++
		total += c.OverallScore
	}
	average := 0.0
	if n := len(report.Candidates); n > 0 {
		average = total / float64(n)
	}

	rows := [][2]any{
		{"Screening Report", ""},
		{"Job Title", report.Job.Title},
		{"Required Skills", strings.Join(report.Job.RequiredSkills, ", ")},
		{"Experience Required", report.Job.ExperienceRequired},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Candidates", len(report.Candidates)},
		{"Average Overall Score", fmt.Sprintf("%.1f", average)},
		{"Highly Recommended", counts[types.RecommendationHighlyRecommended]},
		{"Recommended", counts[types.RecommendationRecommended]},
		{"Maybe", counts[types.RecommendationMaybe]},
		{"Not Recommended", counts[types.RecommendationNotRecommended]},
	}
	for i, row := range rows {
		r := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row[1]); err != nil {
			return err
		}
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "A1", "B1", style)
}

func writeCandidates(f *excelize.File, report Report) error {
	if err := writeHeader(f, candidatesSheet, candidateHeaders); err != nil {
		return err
	}

	for i, c := range report.Candidates {
		values := []any{
			i + 1,
			c.CandidateName,
			c.Filename,
			c.CandidateType,
			c.OverallScore,
			c.SkillMatchPercentage,
			c.ExperienceMatchScore,
			c.QualificationScore,
			c.CulturalFitScore,
			string(c.Recommendation),
			strings.Join(c.MatchedSkills, ", "),
			strings.Join(c.MissingSkills, ", "),
			deref(c.Email),
			deref(c.Phone),
			c.AISummary,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(candidatesSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(candidatesSheet, "B", "D", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(candidatesSheet, "K", "O", 40); err != nil {
		return err
	}
	return f.SetPanes(candidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSkillMatches(f *excelize.File, report Report) error {
	headers := []string{"Candidate", "Required Skill", "Matched With", "Similarity", "Method", "Algorithm"}
	if err := writeHeader(f, skillsSheet, headers); err != nil {
		return err
	}

	row := 2
	for _, c := range report.Candidates {
		for _, d := range c.MatchDetails {
			values := []any{c.CandidateName, d.Required, d.Found, d.Similarity, string(d.Method), string(d.Algorithm)}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(skillsSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}
	return f.SetColWidth(skillsSheet, "A", "C", 24)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
