// Package mock provides deterministic test doubles for the ai service
// interfaces.
//
// Default behavior needs no external services: the embedder hashes text
// into a stable unit vector, the summarizer echoes the text's leading
// words, and the generator returns a fixed completion. Each double
// exposes function fields for injecting custom behavior and a CallCount
// for assertions.
package mock
