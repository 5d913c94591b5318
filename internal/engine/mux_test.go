package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend counts concurrent calls to verify the mux serializes access.
type fakeBackend struct {
	mu          sync.Mutex
	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func (f *fakeBackend) enter() {
	n := atomic.AddInt32(&f.inFlight, 1)
	f.mu.Lock()
	if n > f.maxInFlight {
		f.maxInFlight = n
	}
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
}

func (f *fakeBackend) exit() {
	atomic.AddInt32(&f.inFlight, -1)
}

func (f *fakeBackend) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	f.enter()
	defer f.exit()
	return "generated: " + req.Prompt, nil
}

func (f *fakeBackend) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	f.enter()
	defer f.exit()
	return []byte(text), nil
}

func (f *fakeBackend) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.enter()
	defer f.exit()
	return []float32{1, 2, 3}, nil
}

func TestMux_RoutesAllOperations(t *testing.T) {
	backend := &fakeBackend{}
	mux := NewMux(backend)
	defer mux.Close()

	ctx := context.Background()

	text, err := mux.GenerateText(ctx, TextRequest{Prompt: "hello", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "generated: hello", text)

	audio, err := mux.Synthesize(ctx, "speak this", "af_heart")
	require.NoError(t, err)
	assert.Equal(t, []byte("speak this"), audio)

	vec, err := mux.GenerateEmbedding(ctx, "embed this")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestMux_SerializesConcurrentRequests(t *testing.T) {
	backend := &fakeBackend{delay: 10 * time.Millisecond}
	mux := NewMux(backend)
	defer mux.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mux.GenerateEmbedding(context.Background(), "text")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, int32(1), backend.maxInFlight, "backend must see at most one in-flight request")
}

func TestMux_CancelledContextAbandonsRequest(t *testing.T) {
	backend := &fakeBackend{delay: 50 * time.Millisecond}
	mux := NewMux(backend)
	defer mux.Close()

	// Occupy the worker so the second request waits in the queue.
	go mux.GenerateText(context.Background(), TextRequest{Prompt: "slow"})
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mux.GenerateText(ctx, TextRequest{Prompt: "abandoned"})
	assert.ErrorIs(t, err, context.Canceled)
}
