package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	chunks := Chunk("A short sentence.", 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short sentence.", chunks[0])
}

func TestChunk_AccumulatesSentences(t *testing.T) {
	text := "First sentence. Second sentence. Third sentence."
	chunks := Chunk(text, 40)

	require.Len(t, chunks, 2)
	assert.Equal(t, "First sentence. Second sentence.", chunks[0])
	assert.Equal(t, "Third sentence.", chunks[1])
}

func TestChunk_RespectsMaxSize(t *testing.T) {
	text := "One two three. Four five six! Seven eight nine? Ten eleven twelve."
	for _, maxSize := range []int{18, 20, 30, 50, 100} {
		for _, chunk := range Chunk(text, maxSize) {
			assert.LessOrEqual(t, len(chunk), maxSize,
				"maxSize=%d chunk=%q", maxSize, chunk)
		}
	}
}

func TestChunk_SplitsOversizedSentenceOnClauses(t *testing.T) {
	text := "This sentence runs long, it has several clauses, each separated by commas, so it must be split."
	chunks := Chunk(text, 50)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50, "chunk=%q", chunk)
	}
}

func TestChunk_IndivisibleClauseEmittedVerbatim(t *testing.T) {
	long := strings.Repeat("word ", 30)
	chunks := Chunk(long, 20)

	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(long), chunks[0])
}

func TestChunk_NoTerminalPunctuation(t *testing.T) {
	chunks := Chunk("no punctuation here at all", 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "no punctuation here at all", chunks[0])
}

func TestChunk_NeverEmitsEmptyChunks(t *testing.T) {
	inputs := []string{"", "   ", "\n\n\t", "a. b. c.", "...", ".  .  ."}
	for _, input := range inputs {
		for _, chunk := range Chunk(input, 10) {
			assert.NotEmpty(t, strings.TrimSpace(chunk), "input=%q", input)
		}
	}
}

func TestChunk_PreservesSentenceSequence(t *testing.T) {
	text := "Alpha one. Beta two! Gamma three? Delta four."
	chunks := Chunk(text, 25)

	joined := strings.Join(chunks, " ")
	for _, want := range []string{"Alpha one.", "Beta two!", "Gamma three?", "Delta four."} {
		assert.Contains(t, joined, want)
	}
	// Order preserved.
	assert.Less(t, strings.Index(joined, "Alpha"), strings.Index(joined, "Beta"))
	assert.Less(t, strings.Index(joined, "Beta"), strings.Index(joined, "Gamma"))
	assert.Less(t, strings.Index(joined, "Gamma"), strings.Index(joined, "Delta"))
}

func TestChunk_EllipsisStaysWithSentence(t *testing.T) {
	chunks := Chunk("Wait for it... here it comes. Done.", 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Wait for it... here it comes. Done.", chunks[0])
}

func TestChunk_DecimalNumbersNotSplit(t *testing.T) {
	chunks := Chunk("Pi is 3.14159 approximately. Next sentence.", 200)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "3.14159")
}

func TestChunk_ZeroMaxSizeFallsBackToDefault(t *testing.T) {
	chunks := Chunk("Sentence one. Sentence two.", 0)
	require.Len(t, chunks, 1)
}
