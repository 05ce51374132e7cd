// Package skills detects known skills in resume text and matches them against job requirements.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// lexiconEntry pairs a canonical skill label with the pattern that detects it
// in lower-cased text.
type lexiconEntry struct {
	label   string
	pattern *regexp.Regexp
}

func word(expr string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + expr + `)\b`)
}

// symbol builds a pattern for labels ending in punctuation, where \b cannot anchor.
func symbol(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\W)` + expr + `(?:\W|$)`)
}

// lexicon is the fixed skill dictionary. "java" cannot fire on "javascript"
// because \b never sits between two letters.
var lexicon = []lexiconEntry{
	{"python", word(`python`)},
	{"java", word(`java`)},
	{"javascript", word(`javascript|js`)},
	{"typescript", word(`typescript`)},
	{"c++", symbol(`c\+\+`)},
	{"c#", symbol(`c#`)},
	{"go", word(`golang|go`)},
	{"rust", word(`rust`)},
	{"ruby", word(`ruby`)},
	{"php", word(`php`)},
	{"html", word(`html`)},
	{"css", word(`css`)},
	{"react", word(`react`)},
	{"angular", word(`angular`)},
	{"vue", word(`vue`)},
	{"node", word(`node`)},
	{"express", word(`express`)},
	{"django", word(`django`)},
	{"flask", word(`flask`)},
	{"spring", word(`spring`)},
	{"sql", word(`sql`)},
	{"mysql", word(`mysql`)},
	{"postgresql", word(`postgresql`)},
	{"mongodb", word(`mongodb`)},
	{"redis", word(`redis`)},
	{"aws", word(`aws`)},
	{"azure", word(`azure`)},
	{"gcp", word(`gcp`)},
	{"docker", word(`docker`)},
	{"kubernetes", word(`kubernetes`)},
	{"jenkins", word(`jenkins`)},
	{"machine learning", word(`machine learning|ml`)},
	{"deep learning", word(`deep learning|dl`)},
	{"nlp", word(`nlp`)},
	{"tensorflow", word(`tensorflow`)},
	{"pytorch", word(`pytorch`)},
	{"git", word(`git`)},
	{"github", word(`github`)},
	{"jira", word(`jira`)},
	{"agile", word(`agile`)},
	{"rest api", word(`rest`)},
	{"graphql", word(`graphql`)},
	{"microservices", word(`microservices`)},
	{"numpy", word(`numpy`)},
	{"pandas", word(`pandas`)},
	{"data structures", word(`data structures`)},
	{"problem solving", word(`problem solving|problem-solving`)},
	{"communication skills", word(`communication|communication skills`)},
}

// Extract returns the sorted set of lexicon labels found in text.
func Extract(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(lexicon))
	for _, entry := range lexicon {
		if entry.pattern.MatchString(lower) {
			found = append(found, entry.label)
		}
	}
	sort.Strings(found)
	return found
}

// Labels returns every skill label the extractor knows, in lexicon order.
func Labels() []string {
	labels := make([]string, len(lexicon))
	for i, entry := range lexicon {
		labels[i] = entry.label
	}
	return labels
}
