package playback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"bold", "a **bold** word", "a <b>bold</b> word"},
		{"highlight", "a *key* term", `a <span class="highlight">key</span> term`},
		{"newline", "line one\nline two", "line one<br/>line two"},
		{
			"combined",
			"**Heads up:** use *context* here\nalways",
			`<b>Heads up:</b> use <span class="highlight">context</span> here<br/>always`,
		},
		{"unclosed bold wraps the tail", "a ** b", "a <b> b</b>"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSplitChunksEmptyInput(t *testing.T) {
	assert.Nil(t, SplitChunks(""))
	assert.Nil(t, SplitChunks("   \n\t  "))
}

func TestSplitChunksShortTextIsSingleChunk(t *testing.T) {
	chunks := SplitChunks("one two three")
	require.Len(t, chunks, 1)
	assert.Equal(t, "one two three ", chunks[0])
}

func TestSplitChunksCount(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{1, 1},
		{49, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{150, 3},
		{101, 2},
	}

	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("word ", tt.words))
		chunks := SplitChunks(text)
		assert.Len(t, chunks, tt.want, "for %d words", tt.words)
	}
}

func TestSplitChunksRoundedRunSizeDropsOneRun(t *testing.T) {
	// 5049 words is the first count where the ceil'd run size (51) packs the
	// words into 99 runs instead of the nominal 100. The run sizes hold and
	// the concatenation property still does.
	var words []string
	for i := 0; i < 5049; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	text := strings.Join(words, " ")

	chunks := SplitChunks(text)
	require.Len(t, chunks, 99)
	assert.Len(t, strings.Fields(chunks[0]), 51)
	assert.Equal(t, text+" ", strings.Join(chunks, ""))
}

func TestSplitChunksConcatenationReproducesText(t *testing.T) {
	var words []string
	for i := 0; i < 137; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	text := strings.Join(words, " ")

	chunks := SplitChunks(text)
	joined := strings.Join(chunks, "")
	assert.Equal(t, text+" ", joined)
}

func TestSplitChunksCollapsesWhitespace(t *testing.T) {
	chunks := SplitChunks("a   b\t\tc")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a b c ", chunks[0])
}

func TestDelay(t *testing.T) {
	assert.Equal(t, int64(0), Delay(0).Milliseconds())
	assert.Equal(t, int64(15), Delay(1).Milliseconds())
	assert.Equal(t, int64(150), Delay(10).Milliseconds())
	assert.Equal(t, int64(495), Delay(33).Milliseconds())
	assert.Equal(t, int64(500), Delay(34).Milliseconds())
	assert.Equal(t, int64(500), Delay(1000).Milliseconds())
}
