package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"trims and drops blanks", []string{"  Strong Go  ", "", "   "}, []string{"Strong Go"}},
		{"dedupes case-insensitively", []string{"Leadership", "leadership", "LEADERSHIP "}, []string{"Leadership"}},
		{"keeps order", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
		{"nil input", nil, nil},
		{"all blank", []string{" ", ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanList(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
	assert.Equal(t, "short", Truncate("short", 400))
	assert.Equal(t, "", Truncate("anything", 0))
}
