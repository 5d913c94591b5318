package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileSink is a Player that writes each segment to a numbered WAV file in a
// directory. It has no real-time transport, so every segment "finishes" as
// soon as it is written. Pause and Resume are no-ops.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink writing into dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio output directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Play writes the segment and reports it finished.
func (s *FileSink) Play(seg Segment, onDone func()) {
	path := filepath.Join(s.dir, fmt.Sprintf("segment_%04d.wav", seg.Index))
	if err := os.WriteFile(path, seg.Data, 0o644); err != nil {
		log.Printf("Failed to write audio segment %d: %v", seg.Index, err)
	} else {
		log.Printf("Wrote audio segment %d (%d bytes) to %s", seg.Index, len(seg.Data), path)
	}
	onDone()
}

func (s *FileSink) Pause()  {}
func (s *FileSink) Resume() {}
func (s *FileSink) Stop()   {}
