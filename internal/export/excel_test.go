package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/intellihire/internal/types"
)

func sampleReport() Report {
	email := "asha@example.com"
	return Report{
		Job: types.Job{
			Title:          "Backend Engineer (Python)",
			RequiredSkills: []string{"python", "aws"},
		},
		GeneratedAt: time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
		Candidates: []types.Candidate{
			{Filename: "asha.pdf", AnalysisResult: types.AnalysisResult{
				CandidateName:  "Asha Rao",
				Email:          &email,
				OverallScore:   78,
				Recommendation: types.RecommendationHighlyRecommended,
				MatchedSkills:  []string{"python"},
				MissingSkills:  []string{"aws"},
				MatchDetails: []types.SkillMatchEntry{
					{Required: "python", Found: "python", Similarity: 100, Method: types.MethodExact, Algorithm: types.AlgorithmPatternMatching},
					{Required: "aws", Found: types.NotFound, Method: types.MethodNoMatch, Algorithm: types.AlgorithmNone},
				},
			}},
			{Filename: "maria.docx", AnalysisResult: types.AnalysisResult{
				CandidateName:  "Maria Lopez",
				OverallScore:   22,
				Recommendation: types.RecommendationNotRecommended,
			}},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{summarySheet, candidatesSheet, skillsSheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer (Python)", title)

	total, err := f.GetCellValue(summarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	avg, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "50.0", avg)

	rows, err := f.GetRows(candidatesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, candidateHeaders, rows[0])
	assert.Equal(t, "Asha Rao", rows[1][1])
	assert.Equal(t, "HIGHLY_RECOMMENDED", rows[1][9])
	assert.Equal(t, "asha@example.com", rows[1][12])
	assert.Equal(t, "Maria Lopez", rows[2][1])

	skillRows, err := f.GetRows(skillsSheet)
	require.NoError(t, err)
	require.Len(t, skillRows, 3)
	assert.Equal(t, []string{"Asha Rao", "aws", "Not Found", "0", "NoMatch", "None"}, skillRows[2])
}

func TestWriteFile_AddsExtension(t *testing.T) {
	path, err := WriteFile(filepath.Join(t.TempDir(), "report"), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	_ = f.Close()
}

func TestWrite_NoCandidates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Report{Job: types.Job{Title: "Empty"}}))
	assert.Positive(t, buf.Len())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "backend-engineer-python-candidates.xlsx", Filename(types.Job{Title: "Backend Engineer (Python)"}))
	assert.Equal(t, "job-candidates.xlsx", Filename(types.Job{Title: "!!!"}))
}
