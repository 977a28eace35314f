package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces a compact summary of a chunk of text. Used during
// enrichment to decorate non-leaf nodes.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize returns a short summary of the given text.
	// Returns an error if summary generation fails; callers treat the
	// failure as a per-node degradation, not a pipeline abort.
	Summarize(ctx context.Context, text string) (string, error)
}

// Generator produces free-form text from a prompt. Used for final answer
// synthesis from assembled retrieval context.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate returns the model's completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, Summarizer, and
// Generator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Summarizer returns the summarization service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
