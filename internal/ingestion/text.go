package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MinResumeTextLength is the shortest extracted text worth screening.
const MinResumeTextLength = 100

var (
	spaceRunRe     = regexp.MustCompile(`\s+`)
	blankLineRunRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping line structure,
// headings and bullets intact.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRunRe.ReplaceAllString(result, "\n\n")
	return strings.Trim(result, "\n")
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := line[:len(line)-len(trimmed)]
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", len(indent)) + trimmed
	}
	return strings.Repeat(" ", len(indent)) + spaceRunRe.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// Screenable reports whether extracted text is long enough to analyze.
func Screenable(text string) bool {
	return len(strings.TrimSpace(text)) >= MinResumeTextLength
}

// IngestFile reads a resume from disk and returns its cleaned text and metadata.
// Unreadable documents yield empty text, not an error; only a missing or
// unopenable file fails.
func IngestFile(path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	text := ExtractText(name, f)
	return text, NewMetadata(name, text), nil
}
