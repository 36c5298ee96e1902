package playback

import (
	"regexp"
	"strings"
)

// chunkWordTarget is the nominal number of words per playback chunk.
const chunkWordTarget = 50

var highlightPattern = regexp.MustCompile(`\*(.*?)\*`)

// Normalize converts a raw model response into the display markup the client
// renders: **bold** becomes <b>, *text* becomes a highlight span, and
// newlines become <br/>. The three transforms are order-sensitive and must
// run exactly once, before chunking.
func Normalize(raw string) string {
	parts := strings.Split(raw, "**")
	var b strings.Builder
	for i, part := range parts {
		if i%2 == 1 {
			b.WriteString("<b>")
			b.WriteString(part)
			b.WriteString("</b>")
		} else {
			b.WriteString(part)
		}
	}

	out := highlightPattern.ReplaceAllString(b.String(), `<span class="highlight">$1</span>`)
	return strings.ReplaceAll(out, "\n", "<br/>")
}

// SplitChunks groups the whitespace-delimited words of the normalized text
// into runs of ceil(wordCount/N) words, N = max(1, wordCount/50), with the
// last run absorbing the shortfall. Because the run size rounds up, rare word
// counts emit one run fewer than N (the first is 5049 words: N=100, run size
// 51, 99 runs). The chunk size is what paces playback, so the run count is
// allowed to drift rather than the sizes. Every chunk is re-joined with
// single spaces and carries one trailing space so concatenation reproduces
// the full text. An empty or all-whitespace input yields no chunks.
func SplitChunks(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	n := len(words) / chunkWordTarget
	if n < 1 {
		n = 1
	}
	size := (len(words) + n - 1) / n

	chunks := make([]string, 0, n)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " ")+" ")
	}
	return chunks
}
