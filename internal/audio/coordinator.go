package audio

import (
	"context"
	"log"
	"sync"
)

// State is the playback coordinator state.
type State string

const (
	StateIdle       State = "IDLE"
	StateGenerating State = "GENERATING"
	StatePlaying    State = "PLAYING"
	StatePaused     State = "PAUSED"
	StateFinished   State = "FINISHED"
	StateError      State = "ERROR"
)

// Player plays one audio segment at a time. Play must start playback without
// blocking the caller and invoke onDone exactly once when the segment has
// finished. Pause, Resume, and Stop are called with the coordinator lock held
// and must not call back into the coordinator.
type Player interface {
	Play(seg Segment, onDone func())
	Pause()
	Resume()
	Stop()
}

// Coordinator owns one playback session: it consumes the pipeline's segment
// stream into a queue and drives the Player through it in strict production
// order. Segment arrival and segment-finished events are serialized under one
// lock so at most one segment is ever the active playback target.
type Coordinator struct {
	pipeline *Pipeline
	player   Player

	mu         sync.Mutex
	state      State
	queue      []Segment
	cursor     int
	voice      string
	producing  bool
	waiting    bool
	session    int
	cancel     context.CancelFunc
	done       chan struct{}
	doneClosed bool
	err        error
}

// NewCoordinator creates a Coordinator in the IDLE state.
func NewCoordinator(pipeline *Pipeline, player Player) *Coordinator {
	return &Coordinator{
		pipeline: pipeline,
		player:   player,
		state:    StateIdle,
	}
}

// Play starts or resumes playback of the text. From IDLE or ERROR it begins a
// fresh synthesis session; from FINISHED it replays the cached queue from the
// start without regenerating; from PAUSED it resumes. It is a no-op while
// already generating or playing.
func (c *Coordinator) Play(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePaused:
		c.resumeLocked()
	case StateFinished:
		if len(c.queue) > 0 {
			c.state = StatePlaying
			c.done = make(chan struct{})
			c.doneClosed = false
			c.startLocked()
			return
		}
		c.beginSessionLocked(ctx, text)
	case StateIdle, StateError:
		c.beginSessionLocked(ctx, text)
	}
}

// Pause suspends audio output, retaining the queue and cursor.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}
	c.state = StatePaused
	if !c.waiting {
		c.player.Pause()
	}
}

// Resume continues playback after Pause.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePaused {
		return
	}
	c.resumeLocked()
}

// SetVoice changes the synthesis voice. Cached audio is voice-specific, so
// any existing session is fully reset to IDLE when the voice changes.
func (c *Coordinator) SetVoice(voice string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if voice == c.voice {
		return
	}
	c.voice = voice
	if c.state != StateIdle {
		log.Printf("Voice changed to %q, resetting playback session", voice)
		c.resetLocked()
	}
}

// Reset abandons the current session and returns to IDLE. In-flight synthesis
// results are discarded.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// State returns the current coordinator state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error that moved the coordinator into the ERROR state.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Cursor returns the index of the segment currently playing or awaited.
func (c *Coordinator) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// QueueLen returns the number of segments received so far.
func (c *Coordinator) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Done returns a channel closed when the session reaches FINISHED or ERROR.
// Valid after Play has been called.
func (c *Coordinator) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Coordinator) beginSessionLocked(ctx context.Context, text string) {
	c.resetLocked()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateGenerating
	c.producing = true
	c.done = make(chan struct{})
	c.doneClosed = false
	c.err = nil

	segments, errc := c.pipeline.Synthesize(ctx, text, c.voice)
	go c.consume(c.session, segments, errc)
}

func (c *Coordinator) consume(session int, segments <-chan Segment, errc <-chan error) {
	for seg := range segments {
		c.segmentArrived(session, seg)
	}
	c.productionDone(session, <-errc)
}

func (c *Coordinator) segmentArrived(session int, seg Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session {
		return
	}

	c.queue = append(c.queue, seg)

	switch {
	case c.state == StateGenerating:
		c.state = StatePlaying
		c.startLocked()
	case c.state == StatePlaying && c.waiting:
		c.waiting = false
		c.startLocked()
	}
}

func (c *Coordinator) productionDone(session int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session {
		return
	}

	c.producing = false

	if err != nil {
		c.err = err
		c.state = StateError
		c.waiting = false
		c.closeDoneLocked()
		return
	}

	if c.state == StateGenerating || (c.state == StatePlaying && c.waiting) {
		c.finishLocked()
	}
}

func (c *Coordinator) segmentFinished(session int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session || (c.state != StatePlaying && c.state != StatePaused) {
		return
	}

	c.cursor++
	switch {
	case c.state == StatePaused:
		// Transport is paused; the cursor now awaits the next segment and
		// Resume will pick it up.
		c.waiting = true
	case c.cursor < len(c.queue):
		c.startLocked()
	case c.producing:
		c.waiting = true
	default:
		c.finishLocked()
	}
}

// startLocked begins playback of queue[cursor]. The player call runs on its
// own goroutine so a player that reports completion synchronously cannot
// deadlock on the coordinator lock.
func (c *Coordinator) startLocked() {
	seg := c.queue[c.cursor]
	session := c.session
	go c.player.Play(seg, func() {
		c.segmentFinished(session)
	})
}

func (c *Coordinator) resumeLocked() {
	c.state = StatePlaying
	if !c.waiting {
		c.player.Resume()
		return
	}
	switch {
	case c.cursor < len(c.queue):
		c.waiting = false
		c.startLocked()
	case !c.producing:
		c.finishLocked()
	}
}

func (c *Coordinator) finishLocked() {
	c.state = StateFinished
	c.cursor = 0
	c.waiting = false
	c.closeDoneLocked()
}

func (c *Coordinator) resetLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.session++
	c.player.Stop()
	c.closeDoneLocked()
	c.queue = nil
	c.cursor = 0
	c.waiting = false
	c.producing = false
	c.err = nil
	c.state = StateIdle
}

func (c *Coordinator) closeDoneLocked() {
	if c.done != nil && !c.doneClosed {
		close(c.done)
		c.doneClosed = true
	}
}
