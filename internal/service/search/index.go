package search

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ninakotova/lumina/internal/model/chat"
)

const (
	scoreTitle   = 10
	scoreMessage = 5

	// contextRadius is how many runes of surrounding text a message match
	// carries on each side of the first occurrence.
	contextRadius = 50

	// maxResults truncates the ranked result list.
	maxResults = 20
)

var markupPattern = regexp.MustCompile(`<[^>]+>`)

// ResultType distinguishes where a match was found.
type ResultType string

const (
	ResultTitle   ResultType = "title"
	ResultMessage ResultType = "message"
)

// Result is one ranked search hit. Fragment is the chat title for title
// matches, or a context window around the first occurrence for message
// matches, with query occurrences wrapped in <mark>.
type Result struct {
	Type      ResultType `json:"type"`
	ChatID    string     `json:"chatId"`
	ChatTitle string     `json:"chatTitle"`
	MessageID string     `json:"messageId,omitempty"`
	Role      chat.Role  `json:"role,omitempty"`
	Fragment  string     `json:"fragment"`
	Score     int        `json:"score"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Search ranks case-insensitive substring matches of query over chat titles
// (score 10) and message bodies (score 5). Results keep encounter order
// within a score band and are truncated to the top 20. An empty or
// whitespace-only query yields no results.
func Search(chats []*chat.Chat, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}
	}

	lowerQuery := strings.ToLower(query)
	results := make([]Result, 0, maxResults)

	for _, c := range chats {
		if strings.Contains(strings.ToLower(c.Title), lowerQuery) {
			results = append(results, Result{
				Type:      ResultTitle,
				ChatID:    c.ID,
				ChatTitle: c.Title,
				Fragment:  Highlight(c.Title, query),
				Score:     scoreTitle,
				CreatedAt: c.CreatedAt,
			})
		}

		for _, m := range c.Messages {
			stripped := StripMarkup(m.Content)
			window, ok := contextWindow(stripped, lowerQuery)
			if !ok {
				continue
			}
			results = append(results, Result{
				Type:      ResultMessage,
				ChatID:    c.ID,
				ChatTitle: c.Title,
				MessageID: m.ID,
				Role:      m.Role,
				Fragment:  Highlight(window, query),
				Score:     scoreMessage,
				CreatedAt: c.CreatedAt,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// Highlight wraps every non-overlapping case-insensitive occurrence of the
// literal query in <mark> tags.
func Highlight(text, query string) string {
	if query == "" {
		return text
	}
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	return pattern.ReplaceAllString(text, "<mark>$0</mark>")
}

// StripMarkup drops the display tags playback normalization introduced so
// search operates on plain text.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}

// contextWindow extracts up to contextRadius runes on each side of the first
// case-insensitive occurrence of lowerQuery inside text. strings.ToLower maps
// one rune to one rune, so indices into lower line up with runes.
func contextWindow(text, lowerQuery string) (string, bool) {
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	queryRunes := []rune(lowerQuery)

	idx := runeIndex(lower, queryRunes)
	if idx < 0 {
		return "", false
	}

	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(queryRunes) + contextRadius
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end]), true
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
