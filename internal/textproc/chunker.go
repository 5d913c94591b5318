// Package textproc provides the text splitting and cleanup primitives shared
// by the retrieval and audio pipelines.
package textproc

import (
	"strings"
	"unicode"
)

// Default chunk sizes. Both are tunable through config; these match the
// downstream model input limits.
const (
	DefaultSpeechChunkChars    = 220
	DefaultEmbeddingChunkChars = 400
)

// Chunk splits text into segments of at most maxSize characters along
// sentence boundaries. Sentences are accumulated greedily; a sentence that is
// itself longer than maxSize is re-split on clause punctuation, and a clause
// that still exceeds maxSize is emitted verbatim rather than dropped. Empty
// and whitespace-only segments are never emitted. Text without any
// sentence-terminal punctuation is treated as a single sentence.
func Chunk(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultSpeechChunkChars
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, sentence := range sentences {
		switch {
		case len(sentence) > maxSize:
			flush()
			last := chunkClauses(sentence, maxSize, &chunks)
			current.WriteString(last)
		case current.Len()+len(sentence) > maxSize && current.Len() > 0:
			flush()
			current.WriteString(sentence)
		default:
			current.WriteString(sentence)
		}
	}
	flush()

	return chunks
}

// chunkClauses splits an oversized sentence on clause punctuation, appending
// completed chunks and returning the trailing remainder that still fits, so
// the caller can keep accumulating into it.
func chunkClauses(sentence string, maxSize int, chunks *[]string) string {
	parts := splitClauses(sentence)

	var current strings.Builder
	for _, part := range parts {
		if current.Len()+len(part) > maxSize && current.Len() > 0 {
			if s := strings.TrimSpace(current.String()); s != "" {
				*chunks = append(*chunks, s)
			}
			current.Reset()
		}
		current.WriteString(part)
	}

	remainder := strings.TrimSpace(current.String())
	if remainder == "" {
		return ""
	}
	if len(remainder) > maxSize {
		// Indivisible clause: emit verbatim as an oversized chunk.
		*chunks = append(*chunks, remainder)
		return ""
	}
	return remainder
}

// splitSentences cuts text after `.`, `!` or `?` followed by whitespace or
// end of string. Terminators and trailing whitespace stay attached to their
// sentence so concatenation preserves the original sequence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Swallow a run of terminators ("...", "?!").
		for i+1 < len(runes) && isSentenceEnd(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		// Attach following whitespace to this sentence.
		end := i + 1
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		sentences = append(sentences, string(runes[start:end]))
		start = end
		i = end - 1
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// splitClauses cuts a sentence after `,`, `;` or `:` followed by whitespace.
func splitClauses(sentence string) []string {
	var parts []string
	runes := []rune(sentence)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isClauseEnd(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		end := i + 1
		for end < len(runes) && unicode.IsSpace(runes[end]) {
			end++
		}
		parts = append(parts, string(runes[start:end]))
		start = end
		i = end - 1
	}

	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClauseEnd(r rune) bool {
	return r == ',' || r == ';' || r == ':'
}
