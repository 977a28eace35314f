package mock

import (
	"context"
	"strings"
)

// Summarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type Summarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewSummarizer creates a mock summarizer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize returns a deterministic summary: the first eight words of the
// text prefixed with "summary:".
func (m *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	words := strings.Fields(text)
	if len(words) > 8 {
		words = words[:8]
	}
	return "summary: " + strings.Join(words, " "), nil
}

// CallCount returns the number of times Summarize was called.
func (m *Summarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Summarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
