package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Posting is a job advert reduced to text.
type Posting struct {
	URL         string
	Platform    Platform
	Title       string
	Description string
}

// JobPosting fetches urlStr and extracts its title and description.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (*Posting, error) {
	page, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	platform := DetectPlatform(urlStr)
	posting, err := ParsePosting(page.HTML, platform)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse posting", Cause: err}
	}
	posting.URL = urlStr
	return posting, nil
}

// ParsePosting extracts a posting from HTML. It fails when no description text remains.
func ParsePosting(html string, platform Platform) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range ContentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	description := collapseLines(content.Text())
	if description == "" {
		return nil, fmt.Errorf("no description text found")
	}
	return &Posting{Platform: platform, Title: collapseLines(title), Description: description}, nil
}

// collapseLines trims each line and drops blank ones.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
