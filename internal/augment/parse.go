package augment

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/parsing"
	"github.com/jonathan/intellihire/internal/types"
)

// ParseScores reads an augmenter response field by field. Missing or mistyped
// fields stay nil so the algorithmic value survives the merge. Scores may be
// numbers or numeric strings such as "85" or "85%".
func ParseScores(text string) (*types.AugmentedScores, error) {
	body := llm.CleanJSONBlock(text)
	if !gjson.Valid(body) {
		return nil, &parsing.ParseError{Message: "response is not valid JSON", Response: text}
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return nil, &parsing.ParseError{Message: "response is not a JSON object", Response: text}
	}

	return &types.AugmentedScores{
		OverallScore:         numberField(doc, "overall_score"),
		ExperienceMatchScore: numberField(doc, "experience_match_score"),
		QualificationScore:   numberField(doc, "qualification_score"),
		CulturalFitScore:     numberField(doc, "cultural_fit_score"),
		Strengths:            listField(doc, "strengths"),
		Weaknesses:           listField(doc, "weaknesses"),
		AISummary:            stringField(doc, "ai_summary"),
		Recommendation:       stringField(doc, "recommendation"),
		Reasoning:            stringField(doc, "reasoning"),
		SuggestedQuestions:   listField(doc, "suggested_questions"),
	}, nil
}

// numberField returns nil for absent, non-numeric or non-finite values.
func numberField(doc gjson.Result, key string) *float64 {
	r := doc.Get(key)
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		s := strings.TrimSuffix(strings.TrimSpace(r.String()), "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func stringField(doc gjson.Result, key string) *string {
	r := doc.Get(key)
	if r.Type != gjson.String {
		return nil
	}
	s := strings.TrimSpace(r.String())
	if s == "" {
		return nil
	}
	return &s
}

func listField(doc gjson.Result, key string) []string {
	r := doc.Get(key)
	switch {
	case r.IsArray():
		var items []string
		for _, item := range r.Array() {
			if item.Type == gjson.String {
				items = append(items, item.String())
			}
		}
		return parsing.CleanList(items)
	case r.Type == gjson.String:
		return parsing.CleanList([]string{r.String()})
	default:
		return nil
	}
}
