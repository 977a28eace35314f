package mock

import "context"

// Generator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type Generator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a fixed completion unless GenerateFunc is set.
func (m *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}

	return "generated answer", nil
}

// CallCount returns the number of times Generate was called.
func (m *Generator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Generator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
