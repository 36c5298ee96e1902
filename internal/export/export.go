package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// Format selects an export renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
	markupPattern    = regexp.MustCompile(`<[^>]+>`)
)

// Render produces a downloadable artifact for the chat in the requested
// format. The chat is read-only input; nothing flows back into the engine.
func Render(c *chat.Chat, format Format) ([]byte, string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(c), "text/markdown", nil
	case FormatText:
		return Text(c), "text/plain", nil
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, "", errors.Wrap(err, "marshaling chat")
		}
		return data, "application/json", nil
	default:
		return nil, "", errors.Errorf("unknown export format: %s", format)
	}
}

// Markdown renders the transcript with bold role labels and a rule between
// turns.
func Markdown(c *chat.Chat) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	fmt.Fprintf(&b, "*Created: %s*\n\n", c.CreatedAt.Format("2006-01-02"))

	for _, m := range c.Messages {
		role := "**AI**"
		if m.Role == chat.RoleUser {
			role = "**You**"
		}
		fmt.Fprintf(&b, "%s: %s\n\n---\n\n", role, plainText(m.Content))
	}
	return []byte(b.String())
}

// Text renders the transcript as plain text.
func Text(c *chat.Chat) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.Title)
	fmt.Fprintf(&b, "Created: %s\n\n", c.CreatedAt.Format("2006-01-02"))

	for _, m := range c.Messages {
		role := "AI"
		if m.Role == chat.RoleUser {
			role = "You"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", role, plainText(m.Content))
	}
	return []byte(b.String())
}

// FileName derives the artifact name from the chat title.
func FileName(c *chat.Chat, format Format) string {
	ext := "txt"
	switch format {
	case FormatMarkdown:
		ext = "md"
	case FormatJSON:
		ext = "json"
	}
	return fmt.Sprintf("%s.%s", c.Title, ext)
}

// plainText undoes playback markup: line breaks become newlines, remaining
// tags are dropped.
func plainText(s string) string {
	s = lineBreakPattern.ReplaceAllString(s, "\n")
	return markupPattern.ReplaceAllString(s, "")
}
