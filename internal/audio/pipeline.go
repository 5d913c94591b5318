// Package audio implements the streaming audio pipeline: text cleanup and
// chunking, per-chunk speech synthesis with ordered delivery, and the
// playback coordinator that drives a Player through the segment stream.
package audio

import (
	"context"
	"log"

	"github.com/adityalohuni/AutoBlog/internal/domain"
	"github.com/adityalohuni/AutoBlog/internal/engine"
	"github.com/adityalohuni/AutoBlog/internal/textproc"
)

// Segment is one synthesized audio buffer. Index is the position of the
// source chunk in the cleaned text, so consumers can detect skipped chunks.
type Segment struct {
	Index int
	Text  string
	Data  []byte
}

// Pipeline turns article text into an ordered stream of audio segments.
type Pipeline struct {
	synth     engine.SpeechSynthesizer
	chunkSize int
}

// NewPipeline creates a Pipeline. chunkSize <= 0 falls back to the default
// speech chunk size.
func NewPipeline(synth engine.SpeechSynthesizer, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = textproc.DefaultSpeechChunkChars
	}
	return &Pipeline{synth: synth, chunkSize: chunkSize}
}

// Chunks cleans the text for narration and splits it into synthesis-sized
// chunks. Cleanup order matters: reasoning blocks first, then markdown, then
// symbol normalization.
func (p *Pipeline) Chunks(text string) []string {
	text = textproc.StripThinkBlocks(text)
	text = textproc.CleanMarkdown(text)
	text = textproc.NormalizeForSpeech(text)
	return textproc.Chunk(text, p.chunkSize)
}

// Synthesize produces audio segments for the text, one per chunk, strictly in
// chunk order. Segments are delivered on the returned channel, which is
// closed when production ends. A chunk whose synthesis fails is skipped and
// logged; only when every chunk fails is a SYNTHESIS_ERROR delivered on the
// error channel after the segment channel closes. Cancelling ctx stops
// further synthesis calls promptly.
func (p *Pipeline) Synthesize(ctx context.Context, text, voice string) (<-chan Segment, <-chan error) {
	segments := make(chan Segment)
	errc := make(chan error, 1)

	chunks := p.Chunks(text)

	go func() {
		defer close(errc)
		defer close(segments)

		produced := 0
		var lastErr error

		for i, chunk := range chunks {
			if ctx.Err() != nil {
				return
			}

			data, err := p.synth.Synthesize(ctx, chunk, voice)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Skipping audio chunk %d after synthesis failure: %v", i, err)
				lastErr = err
				continue
			}

			select {
			case segments <- Segment{Index: i, Text: chunk, Data: data}:
				produced++
			case <-ctx.Done():
				return
			}
		}

		if produced == 0 && len(chunks) > 0 {
			errc <- domain.NewDomainErrorWithCause(domain.ErrCodeSynthesis,
				"audio synthesis failed for every chunk", lastErr)
		}
	}()

	return segments, errc
}
