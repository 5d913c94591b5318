package engine

import (
	"context"
	"fmt"
	"sync"
)

// opKind identifies the backend capability a request targets.
type opKind int

const (
	opGenerateText opKind = iota
	opSynthesize
	opEmbed
)

type request struct {
	id     uint64
	kind   opKind
	ctx    context.Context
	text   TextRequest
	speech string
	voice  string
	embed  string
}

type response struct {
	id    uint64
	value any
	err   error
}

// Mux multiplexes requests onto a single logical engine handle. All callers
// in a process share one Mux; requests are assigned a correlation id, queued,
// executed one at a time by a worker goroutine, and resolved against a
// pending-operation table. This keeps the single-in-flight-request discipline
// the backend expects without callers coordinating with each other.
type Mux struct {
	backend Backend

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan response

	requests  chan request
	responses chan response
	quit      chan struct{}
	done      chan struct{}
}

var _ Backend = (*Mux)(nil)

// NewMux creates a Mux around the given backend and starts its worker and
// dispatcher goroutines. Close releases them.
func NewMux(backend Backend) *Mux {
	m := &Mux{
		backend:   backend,
		pending:   make(map[uint64]chan response),
		requests:  make(chan request, 16),
		responses: make(chan response, 16),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go m.work()
	go m.dispatch()
	return m
}

// Close stops the worker. In-flight requests complete; queued requests are
// rejected.
func (m *Mux) Close() {
	close(m.quit)
	<-m.done
}

// work executes requests sequentially against the backend.
func (m *Mux) work() {
	defer close(m.done)
	for {
		select {
		case <-m.quit:
			return
		case req := <-m.requests:
			if err := req.ctx.Err(); err != nil {
				m.responses <- response{id: req.id, err: err}
				continue
			}
			var value any
			var err error
			switch req.kind {
			case opGenerateText:
				value, err = m.backend.GenerateText(req.ctx, req.text)
			case opSynthesize:
				value, err = m.backend.Synthesize(req.ctx, req.speech, req.voice)
			case opEmbed:
				value, err = m.backend.GenerateEmbedding(req.ctx, req.embed)
			default:
				err = fmt.Errorf("unknown engine operation: %d", req.kind)
			}
			m.responses <- response{id: req.id, value: value, err: err}
		}
	}
}

// dispatch resolves responses against the pending table by correlation id.
// Responses for abandoned requests are dropped.
func (m *Mux) dispatch() {
	for {
		select {
		case <-m.done:
			return
		case resp := <-m.responses:
			m.mu.Lock()
			ch, ok := m.pending[resp.id]
			delete(m.pending, resp.id)
			m.mu.Unlock()
			if ok {
				ch <- resp
			}
		}
	}
}

func (m *Mux) submit(req request) (uint64, chan response) {
	ch := make(chan response, 1)
	m.mu.Lock()
	m.nextID++
	req.id = m.nextID
	m.pending[req.id] = ch
	m.mu.Unlock()
	m.requests <- req
	return req.id, ch
}

// abandon removes a pending entry so a late response is discarded instead of
// delivered into a dead session.
func (m *Mux) abandon(id uint64) {
	m.mu.Lock()
	delete(m.pending, id)
	m.mu.Unlock()
}

func (m *Mux) await(ctx context.Context, id uint64, ch chan response) (any, error) {
	select {
	case <-ctx.Done():
		m.abandon(id)
		return nil, ctx.Err()
	case resp := <-ch:
		return resp.value, resp.err
	}
}

// GenerateText implements TextGenerator.
func (m *Mux) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	id, ch := m.submit(request{kind: opGenerateText, ctx: ctx, text: req})
	value, err := m.await(ctx, id, ch)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Synthesize implements SpeechSynthesizer.
func (m *Mux) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	id, ch := m.submit(request{kind: opSynthesize, ctx: ctx, speech: text, voice: voice})
	value, err := m.await(ctx, id, ch)
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// GenerateEmbedding implements Embedder.
func (m *Mux) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	id, ch := m.submit(request{kind: opEmbed, ctx: ctx, embed: text})
	value, err := m.await(ctx, id, ch)
	if err != nil {
		return nil, err
	}
	return value.([]float32), nil
}
