package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/gemini"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// MockGenerator is a scripted gemini.Generator for testing.
// It returns predefined completions instead of calling the AI service.
type MockGenerator struct {
	mu      sync.Mutex
	texts   []string
	served  int
	err     error
	block   chan struct{}
	started chan struct{}
	sources []model.Source
	prompts []gemini.Prompt
}

// NewMockGenerator creates a mock that answers every prompt with an empty JSON object.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// WithResponse queues text as an answer. Answers are served in order and the
// last one repeats once the queue is exhausted.
func (m *MockGenerator) WithResponse(text string) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return m
}

// WithSources attaches web sources to every completion.
func (m *MockGenerator) WithSources(sources ...model.Source) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = sources
	return m
}

// WithError configures the mock to fail every call with err.
func (m *MockGenerator) WithError(err error) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Blocking makes every call wait until Release is called or its context is canceled.
// Started receives one value each time a call begins waiting.
func (m *MockGenerator) Blocking() *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = make(chan struct{})
	m.started = make(chan struct{}, 64)
	return m
}

// Started returns the channel signaled when a blocking call begins.
func (m *MockGenerator) Started() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Release unblocks every waiting and future call.
func (m *MockGenerator) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.block != nil {
		close(m.block)
		m.block = nil
	}
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns every prompt received so far.
func (m *MockGenerator) Prompts() []gemini.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]gemini.Prompt(nil), m.prompts...)
}

// Generate implements gemini.Generator.
func (m *MockGenerator) Generate(ctx context.Context, p gemini.Prompt) (gemini.Completion, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, p)
	block, started := m.block, m.started
	m.mu.Unlock()

	if block != nil {
		started <- struct{}{}
		select {
		case <-block:
		case <-ctx.Done():
			return gemini.Completion{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return gemini.Completion{}, m.err
	}
	text := "{}"
	if len(m.texts) > 0 {
		text = m.texts[min(m.served, len(m.texts)-1)]
	}
	m.served++
	return gemini.Completion{Text: text, Sources: m.sources}, nil
}
