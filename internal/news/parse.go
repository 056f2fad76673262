package news

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/reflex/internal/model"
)

const (
	// MaxHeadlines caps the number of parsed items.
	MaxHeadlines = 3
	// FallbackURL is used when no grounding link lines up with a headline.
	FallbackURL = "https://news.google.com"

	minLineLen = 10
)

var (
	ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)
	citation      = regexp.MustCompile(`\[.*\]`)
)

// ParseHeadlines turns free response text into at most MaxHeadlines items.
// Lines of trivial length are dropped; link i pairs with headline i.
func ParseHeadlines(text string, links []string) []model.NewsItem {
	items := make([]model.NewsItem, 0, MaxHeadlines)
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(strings.TrimSpace(line)) <= minLineLen {
			continue
		}
		idx := len(items)
		url := FallbackURL
		if idx < len(links) && links[idx] != "" {
			url = links[idx]
		}
		title := ordinalPrefix.ReplaceAllString(line, "")
		title = citation.ReplaceAllString(title, "")
		items = append(items, model.NewsItem{Title: strings.TrimSpace(title), URL: url})
		if len(items) == MaxHeadlines {
			break
		}
	}
	return items
}
